package models

import "errors"

// ErrPartialKeyMaterial is returned by [User.ValidateKeyMaterial] when an
// account carries exactly one of KekSalt/WrappedDek. The pair is written
// atomically during provisioning, so a partial pair can only be produced by
// a buggy mutation path or by storage corruption.
var ErrPartialKeyMaterial = errors.New("account has partial key material: kek_salt and wrapped_dek must be set together")

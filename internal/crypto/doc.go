// SPDX-License-Identifier: Apache-2.0

// Package crypto implements the encryption core of the notes service: the
// authenticated-encryption envelope format, the password-based key
// derivation, the DEK wrap/unwrap lifecycle, the frozen legacy server-side
// cipher, and the three-tier content resolver.
//
// Key hierarchy:
//
//	KekSalt, DEK = GenerateKekSalt() + GenerateDEK()   (client, once per account)
//	KEK          = DeriveKEK(password, kekSalt)        (client, on demand, never persisted)
//	WrappedDek   = WrapDEK(DEK, KEK)                   (stored on the server)
//
// The server stores only (KekSalt, WrappedDek). It never holds the password
// beyond the authentication request, never derives the KEK, and can never
// open the wrapped DEK; the zero-knowledge property of the scheme.
//
// Stored text fields come in three tiers, distinguished by prefix marker:
// "e2ee:" envelopes sealed by the client under its DEK, "enc:" legacy
// envelopes sealed server-side before the end-to-end migration, and bare
// pre-encryption plaintext. See [Resolver] for how reads dispatch on the tier.
package crypto

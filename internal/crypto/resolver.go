// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"context"

	"github.com/notesafe/notesafe/internal/logger"
)

// Resolver turns stored field values into what the caller may see:
// plaintext for the legacy tiers, or the untouched end-to-end ciphertext
// the client must open itself.
//
// legacy may be nil when the deployment carries no legacy rows; in that
// configuration enc-marked values simply pass through unchanged.
type Resolver struct {
	legacy *LegacyCipher
}

// NewResolver constructs a [Resolver] over the given legacy cipher.
// A nil cipher is valid and disables legacy decryption.
func NewResolver(legacy *LegacyCipher) *Resolver {
	return &Resolver{legacy: legacy}
}

// Resolve maps a stored field value to its readable form.
//
// Tier dispatch, in fixed order:
//  1. e2ee-marked values are returned unchanged; the server is not a
//     participant in that tier.
//  2. enc-marked values are opened with the legacy server key; on any
//     failure (missing key, wrong key, corruption) the original value is
//     returned unchanged rather than erroring, so a misconfigured legacy
//     key never takes the field offline. The failure is logged at warn
//     level as a corruption signal for operators.
//  3. everything else is pre-encryption plaintext, returned unchanged.
//
// Resolve is idempotent: resolving an already-resolved value is a no-op,
// because decrypted plaintext carries no marker.
func (r *Resolver) Resolve(ctx context.Context, value string) string {
	field := ParseField(value)

	switch field.Tier {
	case TierE2EE:
		return field.Raw

	case TierLegacy:
		if r.legacy == nil {
			return field.Raw
		}
		plaintext, err := r.legacy.OpenLegacy(field.Raw)
		if err != nil {
			// Served as-is: the value may be corrupted, or sealed under a
			// rotated key. The caller still gets its field, operators get
			// the signal.
			logger.FromContext(ctx).Warn().Err(err).Msg("legacy field failed to decrypt, serving raw value")
			return field.Raw
		}
		return plaintext

	default:
		return field.Raw
	}
}

package crypto

import "strings"

// FieldTier identifies which of the three encryption tiers a stored field
// value belongs to. The tier is determined purely by content (prefix
// marker), never by out-of-band metadata, which keeps the legacy migration
// a per-field, per-read decision with no batch rewrite.
type FieldTier int

const (
	// TierPlaintext is pre-encryption legacy plaintext: no marker.
	TierPlaintext FieldTier = iota

	// TierLegacy is a server-side envelope from before the migration.
	TierLegacy

	// TierE2EE is an end-to-end envelope only the client can open.
	TierE2EE
)

// StoredField is the parsed form of a persisted text attribute. Parsing
// happens in a single step at the boundary so that call sites dispatch on
// Tier instead of re-sniffing prefixes.
type StoredField struct {
	// Tier is the encryption tier the raw value belongs to.
	Tier FieldTier

	// Raw is the stored value exactly as read from the database.
	Raw string
}

// ParseField classifies a stored field value by its prefix marker.
// The end-to-end marker is checked first: a value bearing it is never
// examined further, even if its remainder would also parse under the
// legacy format.
func ParseField(value string) StoredField {
	switch {
	case strings.HasPrefix(value, MarkerE2EE):
		return StoredField{Tier: TierE2EE, Raw: value}
	case strings.HasPrefix(value, MarkerLegacy):
		return StoredField{Tier: TierLegacy, Raw: value}
	default:
		return StoredField{Tier: TierPlaintext, Raw: value}
	}
}

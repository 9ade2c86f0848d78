package domain

import "encoding/json"

// Well-known metadata keys.
const (
	MetaKeyMemorialForm = "memorial_form_data"
	MetaKeyCalculator   = "calculator_data"
)

// MetaEntry is a per-user key/value record owned by the remote CMS. Value is
// kept as raw JSON so it round-trips without loss; an absent entry is a valid
// state distinct from an empty object.
type MetaEntry struct {
	OwnerUserID int64           `json:"user_id"`
	Key         string          `json:"meta_key"`
	Value       json.RawMessage `json:"meta_value"`
}

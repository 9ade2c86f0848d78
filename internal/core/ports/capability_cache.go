package ports

import "context"

// CapabilityCache holds recent role/capability lookups keyed by token so
// repeated best-effort fetches do not hammer the CMS. A miss is (nil, false,
// nil); cache errors are reported but callers treat them as misses.
type CapabilityCache interface {
	Get(ctx context.Context, token string) (*Capabilities, bool, error)
	Set(ctx context.Context, token string, caps *Capabilities) error
}

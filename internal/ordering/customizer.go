package ordering

import "strings"

// Built-in sortable fields of the order list.
const (
	FieldID       = "ID"
	FieldDate     = "date"
	FieldModified = "modified"
	FieldTitle    = "title"

	// FieldCustom selects Config.CustomOrderField as the sort key.
	FieldCustom = "custom"
)

// DefaultField is used whenever the configured sort key resolves to nothing.
const DefaultField = FieldID

// Direction is the sort direction applied to the listing.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Config is the persisted customization chosen by an administrator.
type Config struct {
	OrderField       string   `json:"admin_orderby"`
	CustomOrderField string   `json:"admin_orderby_custom,omitempty"`
	ExcludedStatuses []string `json:"admin_filterStatus"`
	AppliedToRole    string   `json:"admin_role,omitempty"`
}

// RequestContext describes the listing request being customized.
type RequestContext struct {
	CurrentUserRoles []string
	IsDefaultListing bool
	AllKnownStatuses []string
}

// QueryOverride is what the caller applies on top of its own query defaults.
// A nil StatusFilter means the status filter is left untouched; a non-nil
// empty slice means no status is allowed.
type QueryOverride struct {
	Applied        bool      `json:"applied"`
	OrderBy        string    `json:"orderby,omitempty"`
	OrderDirection Direction `json:"order,omitempty"`
	StatusFilter   []string  `json:"status,omitempty"`
}

// Customize computes the override for a single list query. It never fails:
// degenerate configuration falls back to a no-op or to DefaultField.
func Customize(cfg Config, rc RequestContext) QueryOverride {
	if !rc.IsDefaultListing {
		return QueryOverride{}
	}
	if cfg.AppliedToRole != "" && !hasRole(rc.CurrentUserRoles, cfg.AppliedToRole) {
		return QueryOverride{}
	}

	return QueryOverride{
		Applied:        true,
		OrderBy:        ResolveOrderBy(cfg),
		OrderDirection: Asc,
		StatusFilter:   allowedStatuses(rc.AllKnownStatuses, cfg.ExcludedStatuses),
	}
}

// ResolveOrderBy returns the sort key the config points at. Unknown field
// names pass through; validating them is up to whoever runs the query.
func ResolveOrderBy(cfg Config) string {
	field := cfg.OrderField
	if field == FieldCustom {
		field = cfg.CustomOrderField
	}
	if field == "" {
		return DefaultField
	}
	return field
}

// IsDefaultListing reports whether the raw status parameter of a listing
// request leaves the status filter at "all".
func IsDefaultListing(statusParam string) bool {
	s := strings.TrimSpace(statusParam)
	return s == "" || strings.EqualFold(s, "all")
}

// hasRole matches role identifiers case-insensitively, like the HTTP role gate.
func hasRole(roles []string, role string) bool {
	role = strings.TrimSpace(role)
	for _, r := range roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

func allowedStatuses(known, excluded []string) []string {
	if len(excluded) == 0 {
		return nil
	}
	skip := make(map[string]struct{}, len(excluded))
	for _, s := range excluded {
		skip[s] = struct{}{}
	}
	out := make([]string, 0, len(known))
	for _, s := range known {
		if _, ok := skip[s]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

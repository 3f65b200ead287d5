package dto

// DashboardLayout is the persisted, versioned selection of widgets.
// Enabled is a set; Order defines render order.
type DashboardLayout struct {
	Version int             `json:"version"`
	Scope   Scope           `json:"scope"`
	Enabled []string        `json:"enabled"`
	Order   []string        `json:"order"`
	Sizes   map[string]Size `json:"sizes"`
}

// IsEnabled reports whether id is in the enabled set.
func (l DashboardLayout) IsEnabled(id string) bool {
	for _, e := range l.Enabled {
		if e == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (l DashboardLayout) Clone() DashboardLayout {
	out := DashboardLayout{
		Version: l.Version,
		Scope:   l.Scope,
		Enabled: append([]string(nil), l.Enabled...),
		Order:   append([]string(nil), l.Order...),
		Sizes:   make(map[string]Size, len(l.Sizes)),
	}
	for k, v := range l.Sizes {
		out.Sizes[k] = v
	}
	return out
}

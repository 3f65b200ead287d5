package layout

import (
	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

const (
	// StorageKey is the versioned persistence key. Bump Version and the key
	// together; old payloads are discarded, never migrated.
	StorageKey = "serrano.dashboard.layout.v1"
	Version    = 1
)

// Default returns the layout of a first visit: every default-enabled widget,
// in catalog order, no size overrides, scope both.
func Default(c *catalog.Catalog) dto.DashboardLayout {
	ids := c.DefaultEnabled()
	return dto.DashboardLayout{
		Version: Version,
		Scope:   dto.ScopeBoth,
		Enabled: append([]string{}, ids...),
		Order:   append([]string{}, ids...),
		Sizes:   map[string]dto.Size{},
	}
}

// Sanitize repairs l against the live catalog. Unknown ids are dropped from
// enabled, order and sizes; enabled ids missing from order are appended;
// an invalid scope becomes both. Sanitize is idempotent.
func Sanitize(c *catalog.Catalog, l dto.DashboardLayout) dto.DashboardLayout {
	enabled := knownUnique(c, l.Enabled)
	order := knownUnique(c, l.Order)

	inOrder := make(map[string]bool, len(order))
	for _, id := range order {
		inOrder[id] = true
	}
	for _, id := range enabled {
		if !inOrder[id] {
			order = append(order, id)
			inOrder[id] = true
		}
	}

	scope := l.Scope
	if !scope.Valid() {
		scope = dto.ScopeBoth
	}

	sizes := make(map[string]dto.Size, len(l.Sizes))
	for id, s := range l.Sizes {
		if c.Has(id) && s.Valid() {
			sizes[id] = s
		}
	}

	return dto.DashboardLayout{
		Version: Version,
		Scope:   scope,
		Enabled: enabled,
		Order:   order,
		Sizes:   sizes,
	}
}

func knownUnique(c *catalog.Catalog, ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] || !c.Has(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// SizeOf returns the size override for id, falling back to the catalog default.
func SizeOf(c *catalog.Catalog, l dto.DashboardLayout, id string) dto.Size {
	if s, ok := l.Sizes[id]; ok && s.Valid() {
		return s
	}
	if d, ok := c.Find(id); ok {
		return d.DefaultSize
	}
	return dto.SizeMedium
}

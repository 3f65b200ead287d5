package catalog

import (
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

// Catalog is a read-only registry of widget definitions. It is safe for
// concurrent use.
type Catalog struct {
	defs []dto.WidgetDefinition
	byID map[string]int
}

// New builds a catalog from defs. Later duplicates of an id are ignored.
func New(defs []dto.WidgetDefinition) *Catalog {
	c := &Catalog{
		defs: make([]dto.WidgetDefinition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if _, dup := c.byID[d.ID]; dup {
			continue
		}
		c.byID[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c
}

// Default returns the built-in widget catalog.
func Default() *Catalog {
	return New(widgets)
}

// All returns every definition in catalog order.
func (c *Catalog) All() []dto.WidgetDefinition {
	out := make([]dto.WidgetDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c *Catalog) Find(id string) (dto.WidgetDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return dto.WidgetDefinition{}, false
	}
	return c.defs[i], true
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// DefaultEnabled returns the ids enabled on a fresh layout, in catalog order.
func (c *Catalog) DefaultEnabled() []string {
	var ids []string
	for _, d := range c.defs {
		if d.DefaultEnabled {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Compatible reports whether a widget declared with scope widget is shown
// under the viewing scope view. Both-scoped widgets and the both view
// match everything; otherwise the scopes must be equal.
func Compatible(view, widget dto.Scope) bool {
	if view == dto.ScopeBoth || widget == dto.ScopeBoth {
		return true
	}
	return view == widget
}

package layout

import "github.com/GregMSThompson/serrano-dashboard/internal/dto"

// Toggle enables id if it is disabled and disables it otherwise. A newly
// enabled id not yet in order is appended to it.
func Toggle(l dto.DashboardLayout, id string) dto.DashboardLayout {
	next := l.Clone()
	if next.IsEnabled(id) {
		next.Enabled = remove(next.Enabled, id)
		return next
	}
	next.Enabled = append(next.Enabled, id)
	if indexOf(next.Order, id) < 0 {
		next.Order = append(next.Order, id)
	}
	return next
}

// Move places id at index in order, clamping index to the valid range.
func Move(l dto.DashboardLayout, id string, index int) dto.DashboardLayout {
	next := l.Clone()
	if indexOf(next.Order, id) < 0 {
		return next
	}
	order := remove(next.Order, id)
	if index < 0 {
		index = 0
	}
	if index > len(order) {
		index = len(order)
	}
	order = append(order, "")
	copy(order[index+1:], order[index:])
	order[index] = id
	next.Order = order
	return next
}

func SetSize(l dto.DashboardLayout, id string, size dto.Size) dto.DashboardLayout {
	next := l.Clone()
	next.Sizes[id] = size
	return next
}

func SetScope(l dto.DashboardLayout, scope dto.Scope) dto.DashboardLayout {
	next := l.Clone()
	next.Scope = scope
	return next
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

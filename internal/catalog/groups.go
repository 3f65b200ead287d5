package catalog

import "github.com/GregMSThompson/serrano-dashboard/internal/dto"

var groupLabels = map[dto.Group]string{
	dto.GroupOverview:    "Overview",
	dto.GroupSerrano:     "Serrano",
	dto.GroupMarket:      "Market",
	dto.GroupCompare:     "Comparisons",
	dto.GroupFinance:     "Finance",
	dto.GroupPerformance: "Performance",
}

// groupOrder is the picker order. It does not affect the grid.
var groupOrder = []dto.Group{
	dto.GroupOverview,
	dto.GroupSerrano,
	dto.GroupMarket,
	dto.GroupCompare,
	dto.GroupFinance,
	dto.GroupPerformance,
}

func GroupLabel(g dto.Group) string {
	if l, ok := groupLabels[g]; ok {
		return l
	}
	return string(g)
}

// Groups returns picker groups in display order.
func Groups() []dto.GroupInfo {
	out := make([]dto.GroupInfo, len(groupOrder))
	for i, g := range groupOrder {
		out[i] = dto.GroupInfo{Group: g, Label: GroupLabel(g)}
	}
	return out
}

// GroupAllowedByScope decides whether a picker group is offered under scope.
func GroupAllowedByScope(g dto.Group, scope dto.Scope) bool {
	switch scope {
	case dto.ScopeSerrano:
		return g != dto.GroupMarket
	case dto.ScopeMarket:
		return g == dto.GroupOverview || g == dto.GroupMarket ||
			g == dto.GroupCompare || g == dto.GroupFinance
	}
	return true
}

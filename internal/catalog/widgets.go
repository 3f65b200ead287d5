package catalog

import "github.com/GregMSThompson/serrano-dashboard/internal/dto"

// widgets is the canonical registry. A widget not listed here does not exist
// for the dashboard. IDs are persisted in layouts: never rename without a
// layout version bump.
var widgets = []dto.WidgetDefinition{
	// overview
	{
		ID:             "overview.geo_map",
		Title:          "Map (world → Brazil)",
		Description:    "Players by country and, drilling into Brazil, by state.",
		Group:          dto.GroupOverview,
		Scope:          dto.ScopeBoth,
		DefaultEnabled: true,
		DefaultSize:    dto.SizeLarge,
		Keywords:       []string{"map", "world", "brazil", "country", "state", "geography"},
	},
	{
		ID:          "kpi.serrano.players_count",
		Title:       "Serrano players",
		Description: "Total number of players in the squad.",
		Group:       dto.GroupOverview,
		Scope:       dto.ScopeSerrano,
		DefaultSize: dto.SizeSmall,
		Keywords:    []string{"players", "squad", "total"},
	},
	{
		ID:          "kpi.serrano.total_market_value",
		Title:       "Total market value",
		Description: "Sum of the squad's market value.",
		Group:       dto.GroupOverview,
		Scope:       dto.ScopeSerrano,
		DefaultSize: dto.SizeSmall,
		Keywords:    []string{"value", "market", "finance"},
	},
	{
		ID:          "kpi.serrano.avg_age",
		Title:       "Average age",
		Description: "Average age of Serrano players.",
		Group:       dto.GroupOverview,
		Scope:       dto.ScopeSerrano,
		DefaultSize: dto.SizeSmall,
		Keywords:    []string{"age", "average"},
	},
	{
		ID:          "kpi.market.deals_count",
		Title:       "Market transfers",
		Description: "Number of transfers in the period.",
		Group:       dto.GroupOverview,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeSmall,
		Keywords:    []string{"transfers", "market"},
	},
	{
		ID:          "kpi.market.total_fee",
		Title:       "Market volume",
		Description: "Total fees moved in transfers.",
		Group:       dto.GroupOverview,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeSmall,
		Keywords:    []string{"value", "market", "transfers"},
	},

	// serrano
	{
		ID:             "serrano.age_distribution",
		Title:          "Age distribution",
		Description:    "Serrano players by age band.",
		Group:          dto.GroupSerrano,
		Scope:          dto.ScopeSerrano,
		DefaultEnabled: true,
		DefaultSize:    dto.SizeMedium,
		Keywords:       []string{"age", "band", "histogram"},
	},
	{
		ID:             "serrano.position_distribution",
		Title:          "Position distribution",
		Description:    "Squad composition by position.",
		Group:          dto.GroupSerrano,
		Scope:          dto.ScopeSerrano,
		DefaultEnabled: true,
		DefaultSize:    dto.SizeMedium,
		Keywords:       []string{"position", "squad"},
	},
	{
		ID:             "serrano.market_value_top_players",
		Title:          "Top players by market value",
		Description:    "Ranking of the squad's most valuable players.",
		Group:          dto.GroupSerrano,
		Scope:          dto.ScopeSerrano,
		DefaultEnabled: true,
		DefaultSize:    dto.SizeLarge,
		Keywords:       []string{"value", "ranking", "players"},
	},
	{
		ID:          "serrano.value_over_time",
		Title:       "Squad value over time",
		Description: "Aggregate squad value over time (snapshots).",
		Group:       dto.GroupSerrano,
		Scope:       dto.ScopeSerrano,
		DefaultSize: dto.SizeLarge,
		Keywords:    []string{"history", "value", "time"},
	},
	{
		ID:          "serrano.age_vs_value_scatter",
		Title:       "Age vs market value",
		Description: "Relationship between player age and value.",
		Group:       dto.GroupSerrano,
		Scope:       dto.ScopeSerrano,
		DefaultSize: dto.SizeLarge,
		Keywords:    []string{"age", "value", "scatter"},
	},
	{
		ID:          "serrano.representation_ranking",
		Title:       "Agencies / representation",
		Description: "Agencies ranked by number of players represented.",
		Group:       dto.GroupSerrano,
		Scope:       dto.ScopeSerrano,
		DefaultSize: dto.SizeMedium,
		Keywords:    []string{"agency", "representation"},
	},

	// market
	{
		ID:          "market.deals_by_month",
		Title:       "Transfers per month",
		Description: "Monthly number of transfers.",
		Group:       dto.GroupMarket,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeMedium,
		Keywords:    []string{"transfers", "monthly"},
	},
	{
		ID:          "market.fee_by_month",
		Title:       "Fees per month",
		Description: "Monthly sum of transfer fees.",
		Group:       dto.GroupMarket,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeMedium,
		Keywords:    []string{"value", "monthly"},
	},
	{
		ID:          "market.fee_distribution",
		Title:       "Fee distribution",
		Description: "Distribution of transfer fees by band.",
		Group:       dto.GroupMarket,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeMedium,
		Keywords:    []string{"histogram", "value"},
	},
	{
		ID:          "market.top_buyers_sellers",
		Title:       "Top buying/selling clubs",
		Description: "Clubs ranked by fee volume.",
		Group:       dto.GroupMarket,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeLarge,
		Keywords:    []string{"clubs", "ranking"},
	},
	{
		ID:          "market.top_leagues_countries",
		Title:       "Top leagues and countries",
		Description: "Transfers by destination country.",
		Group:       dto.GroupMarket,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeMedium,
		Keywords:    []string{"leagues", "countries"},
	},
	{
		ID:          "market.age_vs_fee_scatter",
		Title:       "Age vs transfer fee",
		Description: "Relationship between athlete age and transfer fee.",
		Group:       dto.GroupMarket,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeLarge,
		Keywords:    []string{"age", "value", "scatter"},
	},
	{
		ID:          "market.position_avg_fee",
		Title:       "Average fee by position",
		Description: "Average transfer fee per position.",
		Group:       dto.GroupMarket,
		Scope:       dto.ScopeMarket,
		DefaultSize: dto.SizeMedium,
		Keywords:    []string{"position", "average"},
	},

	// compare
	{
		ID:          "compare.position_share_serrano_vs_market",
		Title:       "Positions: Serrano vs market",
		Description: "Share of positions in the squad compared with the market.",
		Group:       dto.GroupCompare,
		Scope:       dto.ScopeBoth,
		DefaultSize: dto.SizeLarge,
		Keywords:    []string{"comparison", "position"},
	},
	{
		ID:          "compare.avg_age_by_position",
		Title:       "Average age by position",
		Description: "Average age per position, Serrano vs market.",
		Group:       dto.GroupCompare,
		Scope:       dto.ScopeBoth,
		DefaultSize: dto.SizeLarge,
		Keywords:    []string{"comparison", "age"},
	},
}

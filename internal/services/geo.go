package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/models"
)

const brazil = "BR"

type geoStore interface {
	PlayersWithClubs(ctx context.Context) ([]models.Player, error)
}

// geoService builds the overview.* widgets from the full roster. Nothing is
// cached beyond a single request.
type geoService struct {
	store geoStore
	now   func() time.Time
}

func NewGeoService(store geoStore) *geoService {
	return &geoService{store: store, now: time.Now}
}

func (s *geoService) Load(ctx context.Context, widgetID string, f dto.WidgetFilters) dto.WidgetResponse {
	if widgetID != "overview.geo_map" {
		return emptyResponse(s.now(), widgetID, "Widget not recognized.", "")
	}
	return run(ctx, s.now(), widgetID, f, widgetLoad{
		load:    s.geoMap,
		failMsg: "Failed to load the map data.",
	})
}

func (s *geoService) geoMap(ctx context.Context, _ dto.WidgetFilters) (dto.Payload, error) {
	data, err := s.Build(ctx)
	if err != nil {
		return dto.Payload{}, err
	}
	return dto.Payload{Kind: dto.KindGeoMap, Data: data}, nil
}

// Build aggregates players by their club's country and, for Brazil, state.
// Players whose club has no country are counted as missing.
func (s *geoService) Build(ctx context.Context) (dto.GeoMapData, error) {
	players, err := s.store.PlayersWithClubs(ctx)
	if err != nil {
		return dto.GeoMapData{}, err
	}
	return aggregateGeo(players), nil
}

func aggregateGeo(players []models.Player) dto.GeoMapData {
	out := dto.GeoMapData{
		Counts: dto.GeoCounts{
			ByCountry:   map[string]int{},
			ByStateBR:   map[string]int{},
			ByContinent: map[string]int{},
		},
		Players: dto.GeoPlayers{
			ByCountry: map[string][]dto.PlayerMini{},
			ByStateBR: map[string][]dto.PlayerMini{},
		},
	}

	for _, p := range players {
		country := ""
		if p.Club != nil && p.Club.CountryCode != nil {
			country = strings.ToUpper(strings.TrimSpace(*p.Club.CountryCode))
		}
		if country == "" {
			out.Counts.Missing++
			continue
		}

		mini := playerMini(p)
		out.Counts.ByCountry[country]++
		out.Counts.ByContinent[continentOf(country)]++
		out.Players.ByCountry[country] = append(out.Players.ByCountry[country], mini)

		if country == brazil {
			state := dto.UnknownState
			if p.Club.StateCode != nil {
				if uf := strings.ToUpper(strings.TrimSpace(*p.Club.StateCode)); uf != "" {
					state = uf
				}
			}
			out.Counts.ByStateBR[state]++
			out.Players.ByStateBR[state] = append(out.Players.ByStateBR[state], mini)
		}
	}
	return out
}

func playerMini(p models.Player) dto.PlayerMini {
	mini := dto.PlayerMini{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		PhotoURL: p.PhotoURL,
	}
	if p.Club != nil {
		mini.Club = &dto.ClubRef{ID: p.Club.ID, Name: p.Club.Name, LogoURL: p.Club.LogoURL}
	}
	return mini
}

// continentOf buckets an ISO2 country code. The map view draws the same
// regions as rough boxes (Europe: lat 34..72, lon -25..45; South America:
// lat -56..13, lon -82..-34).
func continentOf(iso2 string) string {
	switch {
	case europe[iso2]:
		return dto.ContinentEurope
	case southAmerica[iso2]:
		return dto.ContinentSouthAmerica
	default:
		return dto.ContinentOther
	}
}

var europe = setOf(
	"AD", "AL", "AM", "AT", "AZ", "BA", "BE", "BG", "BY", "CH", "CY", "CZ", "DE", "DK",
	"EE", "ES", "FI", "FO", "FR", "GB", "GE", "GI", "GR", "HR", "HU", "IE", "IS", "IT",
	"KZ", "LI", "LT", "LU", "LV", "MC", "MD", "ME", "MK", "MT", "NL", "NO", "PL", "PT",
	"RO", "RS", "RU", "SE", "SI", "SK", "SM", "TR", "UA", "VA", "XK",
)

var southAmerica = setOf(
	"AR", "BO", "BR", "CL", "CO", "EC", "FK", "GF", "GY", "PE", "PY", "SR", "UY", "VE",
)

func setOf(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}

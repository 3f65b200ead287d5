package dto

// Continent buckets used for the world → continent → Brazil drill-down.
const (
	ContinentEurope       = "EUROPE"
	ContinentSouthAmerica = "SOUTH_AMERICA"
	ContinentOther        = "OTHER"
)

// UnknownState is the Brazilian state key used when a club has no state code.
const UnknownState = "—"

// ClubRef is the lightweight club projection attached to a PlayerMini.
type ClubRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logoUrl"`
}

// PlayerMini is the display-only player projection used by the geo map.
type PlayerMini struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position *string  `json:"position"`
	PhotoURL *string  `json:"photoUrl"`
	Club     *ClubRef `json:"club"`
}

type GeoCounts struct {
	ByCountry   map[string]int `json:"byCountry"`
	ByStateBR   map[string]int `json:"byStateBR"`
	ByContinent map[string]int `json:"byContinent"`
	Missing     int            `json:"missing"`
}

type GeoPlayers struct {
	ByCountry map[string][]PlayerMini `json:"byCountry"`
	ByStateBR map[string][]PlayerMini `json:"byStateBR"`
}

// GeoMapData is rebuilt from the full roster on every request.
type GeoMapData struct {
	Counts  GeoCounts  `json:"counts"`
	Players GeoPlayers `json:"players"`
}

package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

var validate = validator.New()

const periodDateTag = "datetime=2006-01-02"

// Each period bound accepts three spellings; the first present wins.
var (
	periodFromKeys = []string{"from", "periodFrom", "period.from"}
	periodToKeys   = []string{"to", "periodTo", "period.to"}
)

// readScope coerces a missing or unknown scope to both.
func readScope(r *http.Request) dto.Scope {
	return dto.ParseScope(r.URL.Query().Get("scope"))
}

// readFilters builds filters from the query string. Malformed values are
// dropped rather than rejected so a bad link still renders the dashboard.
func readFilters(r *http.Request) dto.WidgetFilters {
	q := r.URL.Query()

	return dto.WidgetFilters{
		Period:    readPeriod(q),
		Position:  parseList(q, "position"),
		Agency:    parseList(q, "agency"),
		Situation: parseList(q, "situation"),
		Foot:      parseList(q, "foot"),
		Club:      parseList(q, "club"),
		Country:   parseList(q, "country"),
		League:    parseList(q, "league"),
	}
}

func readPeriod(q url.Values) *dto.Period {
	p := dto.Period{
		From: firstDate(q, periodFromKeys),
		To:   firstDate(q, periodToKeys),
	}
	if p.From == "" && p.To == "" {
		return nil
	}
	return &p
}

func firstDate(q url.Values, keys []string) string {
	for _, k := range keys {
		if !q.Has(k) {
			continue
		}
		v := strings.TrimSpace(q.Get(k))
		if validate.Var(v, periodDateTag) != nil {
			return ""
		}
		return v
	}
	return ""
}

// parseList splits a comma-separated parameter, dropping blanks.
func parseList(q url.Values, key string) []string {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

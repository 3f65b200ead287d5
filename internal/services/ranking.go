package services

import (
	"sort"
	"strings"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

const shortLabelRunes = 18

type labelTally struct {
	label string
	count int
}

// countTop tallies non-blank labels and returns them by count descending.
// Ties keep first-seen order. limit <= 0 keeps everything.
func countTop(labels []string, limit int) []labelTally {
	index := map[string]int{}
	var out []labelTally
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if i, ok := index[l]; ok {
			out[i].count++
			continue
		}
		index[l] = len(out)
		out = append(out, labelTally{label: l, count: 1})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type clubRank struct {
	club   string
	buyer  float64
	seller float64
}

func (r clubRank) peak() float64 {
	if r.buyer > r.seller {
		return r.buyer
	}
	return r.seller
}

// mergeBuyerSeller joins the two club rankings by name, filling the missing
// side with zero, drops clubs with nothing on either side, and orders by the
// larger of the two totals. Ties keep buyers-then-sellers order.
func mergeBuyerSeller(buyers, sellers []dto.ClubTotal, limit int) []clubRank {
	index := map[string]int{}
	var out []clubRank

	for _, b := range buyers {
		name := displayLabel(b.Club)
		if i, ok := index[name]; ok {
			out[i].buyer = b.Total
			continue
		}
		index[name] = len(out)
		out = append(out, clubRank{club: name, buyer: b.Total})
	}
	for _, s := range sellers {
		name := displayLabel(s.Club)
		if i, ok := index[name]; ok {
			out[i].seller = s.Total
			continue
		}
		index[name] = len(out)
		out = append(out, clubRank{club: name, seller: s.Total})
	}

	kept := out[:0]
	for _, r := range out {
		if r.buyer > 0 || r.seller > 0 {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].peak() > kept[j].peak() })
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// displayLabel trims s and substitutes a dash for blanks.
func displayLabel(s string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return dto.UnknownState
}

func optLabel(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func shortLabel(s string) string {
	r := []rune(s)
	if len(r) <= shortLabelRunes {
		return s
	}
	return string(r[:shortLabelRunes]) + "…"
}

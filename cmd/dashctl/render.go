package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	dashboardclient "github.com/GregMSThompson/serrano-dashboard/internal/client/dashboard"
	"github.com/GregMSThompson/serrano-dashboard/internal/composer"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/render"
)

const previewRows = 6

type renderFlags struct {
	scope string
	from  string
	to    string
	lists map[string]*[]string
}

func newRenderCmd(a *app) *cobra.Command {
	rf := renderFlags{lists: map[string]*[]string{}}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch every active widget once and print its chart selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			f, err := rf.filters()
			if err != nil {
				return err
			}

			eng := composer.New(ctx, a.layoutStore(), dashboardclient.NewAdapter(a.apiURL, a.token, a.timeout))
			defer eng.Close()

			refreshed := false
			if rf.scope != "" {
				s := dto.Scope(rf.scope)
				if !s.Valid() {
					return fmt.Errorf("invalid scope %q", rf.scope)
				}
				eng.SetScope(ctx, s)
				refreshed = true
			}
			if !f.IsZero() {
				eng.SetFilters(f)
				refreshed = true
			}
			if !refreshed {
				eng.Refresh()
			}
			eng.Wait()

			printSnapshot(a.out, eng.Snapshot())
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&rf.scope, "scope", "", "viewing scope (serrano, market, both); persisted like a scope switch")
	fl.StringVar(&rf.from, "from", "", "period start, YYYY-MM-DD")
	fl.StringVar(&rf.to, "to", "", "period end, YYYY-MM-DD")
	for _, name := range []string{"position", "agency", "situation", "foot", "club", "country", "league"} {
		rf.lists[name] = fl.StringSlice(name, nil, name+" filter, comma separated")
	}
	return cmd
}

func (rf renderFlags) filters() (dto.WidgetFilters, error) {
	f := dto.WidgetFilters{
		Position:  *rf.lists["position"],
		Agency:    *rf.lists["agency"],
		Situation: *rf.lists["situation"],
		Foot:      *rf.lists["foot"],
		Club:      *rf.lists["club"],
		Country:   *rf.lists["country"],
		League:    *rf.lists["league"],
	}
	for _, d := range []string{rf.from, rf.to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return f, fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
		}
	}
	if rf.from != "" || rf.to != "" {
		f.Period = &dto.Period{From: rf.from, To: rf.to}
	}
	return f, nil
}

func printSnapshot(w io.Writer, snap composer.Snapshot) {
	fmt.Fprintf(w, "session %s  scope=%s  generation=%d\n", snap.SessionID, snap.Layout.Scope, snap.Generation)

	printKPIs(w, snap.KPIs)

	for _, card := range snap.Cards {
		fmt.Fprintf(w, "\n[%s] %s (%s)\n", card.Size, card.Definition.Title, card.Definition.ID)
		printCard(w, card)
	}
}

func printKPIs(w io.Writer, st composer.KPIState) {
	switch {
	case st.Err != nil:
		fmt.Fprintln(w, "KPIs: unavailable")
		return
	case st.Response == nil:
		return
	case !st.Response.OK:
		fmt.Fprintf(w, "KPIs: %s\n", st.Response.Error)
		return
	}

	keys := make([]string, 0, len(st.Response.KPIs))
	for k := range st.Response.KPIs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, "KPIs")
	for _, k := range keys {
		d := st.Response.KPIs[k]
		fmt.Fprintf(w, "  %-28s %s\n", d.Label, render.KPI(d))
	}
}

func printCard(w io.Writer, card composer.Card) {
	st := card.State
	switch {
	case st.Loading:
		fmt.Fprintln(w, "  loading…")
		return
	case st.Blank():
		fmt.Fprintf(w, "  %s %s\n", render.Missing, st.Message())
		return
	}

	c := render.Select(*st.Response.Payload, card.Size)
	switch c.Shape {
	case render.ShapeKPI:
		fmt.Fprintf(w, "  %s\n", render.KPI(*c.KPI))
	case render.ShapeGeoMap:
		printGeo(w, c.Geo)
	case render.ShapeBar, render.ShapeLine, render.ShapeScatter:
		printChart(w, c)
	default:
		fmt.Fprintf(w, "  %s nothing to show\n", render.Missing)
	}
}

func printChart(w io.Writer, c render.Chart) {
	series := make([]string, len(c.Series))
	for i, s := range c.Series {
		series[i] = fmt.Sprintf("%s(%s)", s.Key, s.Axis)
	}
	fmt.Fprintf(w, "  %s  label=%s  series=%s", c.Shape, c.LabelKey, strings.Join(series, ","))
	if c.DualAxis {
		fmt.Fprint(w, "  dual-axis")
	}
	fmt.Fprintln(w)
	if len(c.YearTicks) > 0 {
		ticks := make([]string, len(c.YearTicks))
		for i, t := range c.YearTicks {
			ticks[i] = render.PeriodTick(c.LabelKey, t)
		}
		fmt.Fprintf(w, "  ticks: %s\n", strings.Join(ticks, " "))
	}
	if c.Scatter != nil {
		fmt.Fprintf(w, "  %s ticks: %v\n", c.Scatter.XKey, c.Scatter.XTicks)
	}
	for _, s := range c.Series {
		var vs []float64
		for _, r := range c.Records {
			if v, ok := render.Numeric(r[s.Key]); ok {
				vs = append(vs, v)
			}
		}
		if len(vs) > 0 {
			fmt.Fprintf(w, "  %s range: %s..%s\n", s.Key, render.Axis(s.Key, floats.Min(vs)), render.Axis(s.Key, floats.Max(vs)))
		}
	}

	for i, r := range c.Records {
		if i == previewRows {
			fmt.Fprintf(w, "  … %d more\n", len(c.Records)-previewRows)
			break
		}
		label, _ := r[c.LabelKey].(string)
		values := make([]string, 0, len(c.Series))
		for _, s := range c.Series {
			v, ok := render.Numeric(r[s.Key])
			if !ok {
				values = append(values, render.Missing)
				continue
			}
			values = append(values, render.Tooltip(s.Key, v))
		}
		fmt.Fprintf(w, "  %-20s %s\n", label, strings.Join(values, "  "))
	}
}

// printGeo summarises the map aggregate; data may be typed or decoded JSON.
func printGeo(w io.Writer, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		fmt.Fprintf(w, "  %s map unavailable\n", render.Missing)
		return
	}
	var geo dto.GeoMapData
	if err := json.Unmarshal(raw, &geo); err != nil {
		fmt.Fprintf(w, "  %s map unavailable\n", render.Missing)
		return
	}

	fmt.Fprintf(w, "  countries=%d  brazil_states=%d  missing=%d\n",
		len(geo.Counts.ByCountry), len(geo.Counts.ByStateBR), geo.Counts.Missing)
	for _, cont := range []string{dto.ContinentEurope, dto.ContinentSouthAmerica, dto.ContinentOther} {
		fmt.Fprintf(w, "  %-14s %s\n", cont, render.Number(float64(geo.Counts.ByContinent[cont])))
	}
}

package dashboardclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
)

const serviceName = "dashboard-api"

// Adapter fetches widget envelopes and KPI batches from the dashboard API.
type Adapter struct {
	client *resty.Client
}

func NewAdapter(baseURL, token string, timeout time.Duration) *Adapter {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Adapter{client: c}
}

func (a *Adapter) FetchWidget(ctx context.Context, widgetID string, f dto.WidgetFilters, scope dto.Scope) (dto.WidgetResponse, error) {
	var out dto.WidgetResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetPathParam("id", widgetID).
		SetQueryParamsFromValues(EncodeQuery(f, scope)).
		SetResult(&out).
		Get("/dashboard/widgets/{id}")
	if err := checkResponse(resp, err, "widget request failed"); err != nil {
		return out, err
	}
	return out, nil
}

func (a *Adapter) FetchKPIs(ctx context.Context, scope dto.Scope) (dto.KPIsResponse, error) {
	var out dto.KPIsResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("scope", string(scope)).
		SetResult(&out).
		Get("/dashboard/kpis")
	if err := checkResponse(resp, err, "kpi request failed"); err != nil {
		return out, err
	}
	return out, nil
}

// checkResponse treats transport failures and 5xx answers as transient.
func checkResponse(resp *resty.Response, err error, msg string) error {
	if err != nil {
		return errs.NewExternalServiceError(serviceName, msg, true, err)
	}
	if resp.IsError() {
		status := resp.StatusCode()
		return errs.NewExternalServiceError(serviceName, msg, status >= 500,
			fmt.Errorf("unexpected status %d", status))
	}
	return nil
}

// EncodeQuery renders filters and scope as the widget endpoint's query string.
func EncodeQuery(f dto.WidgetFilters, scope dto.Scope) url.Values {
	v := url.Values{}
	if scope != "" {
		v.Set("scope", string(scope))
	}
	if f.Period != nil {
		if f.Period.From != "" {
			v.Set("from", f.Period.From)
		}
		if f.Period.To != "" {
			v.Set("to", f.Period.To)
		}
	}
	setList(v, "position", f.Position)
	setList(v, "agency", f.Agency)
	setList(v, "situation", f.Situation)
	setList(v, "foot", f.Foot)
	setList(v, "club", f.Club)
	setList(v, "country", f.Country)
	setList(v, "league", f.League)
	return v
}

func setList(v url.Values, key string, values []string) {
	if len(values) > 0 {
		v.Set(key, strings.Join(values, ","))
	}
}

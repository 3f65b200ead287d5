package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/pkg/logger"
)

// loadFunc produces a widget payload. A zero-row result is an empty payload,
// never an error; errors are reserved for failed queries.
type loadFunc func(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error)

// widgetLoad pairs a loader with the generic message shown when it fails.
type widgetLoad struct {
	load    loadFunc
	failMsg string
}

// run executes a widgetLoad and wraps the outcome in an envelope. The
// underlying error is logged and never returned to the caller.
func run(ctx context.Context, now time.Time, widgetID string, f dto.WidgetFilters, w widgetLoad) dto.WidgetResponse {
	payload, err := w.load(ctx, f)
	if err != nil {
		logger.FromContext(ctx).Error("widget load failed", "widget_id", widgetID, "error", err)
		return failure(widgetID, w.failMsg)
	}
	if payload.Kind == dto.KindEmpty {
		return emptyResponse(now, widgetID, payload.Reason, payload.Hint)
	}
	if !honoursFilters(widgetID) {
		f = dto.WidgetFilters{}
	}
	return success(now, widgetID, f, payload)
}

// honoursFilters reports whether a widget's loader applies request filters.
// KPI and overview widgets always summarise the whole dataset.
func honoursFilters(widgetID string) bool {
	return !strings.HasPrefix(widgetID, "kpi.") && !strings.HasPrefix(widgetID, "overview.")
}

func success(now time.Time, widgetID string, f dto.WidgetFilters, p dto.Payload) dto.WidgetResponse {
	resp := dto.WidgetResponse{
		OK:          true,
		WidgetID:    widgetID,
		GeneratedAt: &now,
		Payload:     &p,
	}
	if !f.IsZero() {
		resp.Filters = &f
	}
	return resp
}

func emptyResponse(now time.Time, widgetID, reason, hint string) dto.WidgetResponse {
	return dto.WidgetResponse{
		OK:          true,
		WidgetID:    widgetID,
		GeneratedAt: &now,
		Payload:     &dto.Payload{Kind: dto.KindEmpty, Reason: reason, Hint: hint},
	}
}

func failure(widgetID, msg string) dto.WidgetResponse {
	return dto.WidgetResponse{OK: false, WidgetID: widgetID, Error: msg}
}

func emptyPayload(reason, hint string) dto.Payload {
	return dto.Payload{Kind: dto.KindEmpty, Reason: reason, Hint: hint}
}

func chart(kind dto.PayloadKind, data []dto.Record, labelKey string, seriesKeys ...string) dto.Payload {
	return dto.Payload{Kind: kind, Data: data, LabelKey: labelKey, SeriesKeys: seriesKeys}
}

func kpiPayload(label string, value float64, unit string) dto.Payload {
	return dto.Payload{Kind: dto.KindKPI, Data: dto.KpiDatum{Label: label, Value: &value, Unit: unit}}
}

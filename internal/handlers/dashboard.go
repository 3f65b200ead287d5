package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
	"github.com/GregMSThompson/serrano-dashboard/internal/middleware"
	"github.com/GregMSThompson/serrano-dashboard/internal/response"
)

type WidgetDispatcher interface {
	Dispatch(ctx context.Context, widgetID string, f dto.WidgetFilters, scope dto.Scope) dto.WidgetResponse
}

type KPIService interface {
	Batch(ctx context.Context, scope dto.Scope) dto.KPIsResponse
	Refresh(ctx context.Context, scope dto.Scope) dto.KPIsResponse
}

type GeoService interface {
	Build(ctx context.Context) (dto.GeoMapData, error)
}

type LayoutService interface {
	Get(ctx context.Context, uid string) dto.DashboardLayout
	Save(ctx context.Context, uid string, l dto.DashboardLayout) dto.DashboardLayout
	Reset(ctx context.Context, uid string) dto.DashboardLayout
}

// geoResponse is the raw map aggregate served outside the widget envelope.
type geoResponse struct {
	OK          bool           `json:"ok"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Data        dto.GeoMapData `json:"data"`
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	Catalog         *catalog.Catalog
	Dispatcher      WidgetDispatcher
	KPISvc          KPIService
	GeoSvc          GeoService
	LayoutSvc       LayoutService
	now             func() time.Time
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		Catalog:         deps.Catalog,
		Dispatcher:      deps.Dispatcher,
		KPISvc:          deps.KPISvc,
		GeoSvc:          deps.GeoSvc,
		LayoutSvc:       deps.LayoutSvc,
		now:             time.Now,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/catalog", h.GetCatalog)
	r.Get("/widgets/{id}", h.GetWidget)
	r.Get("/kpis", h.GetKPIs)
	r.Post("/kpis/refresh", h.RefreshKPIs)
	r.Get("/overview.geo_map", h.GetGeoMap)
	r.Get("/layout", h.GetLayout)
	r.Put("/layout", h.PutLayout)
	r.Delete("/layout", h.DeleteLayout)
	return r
}

func (h *dashboardHandlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.CatalogResponse{
		Widgets: h.Catalog.All(),
		Groups:  catalog.Groups(),
	})
}

// GetWidget always answers 200; failures travel inside the envelope.
func (h *dashboardHandlers) GetWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "id")
	resp := h.Dispatcher.Dispatch(r.Context(), widgetID, readFilters(r), readScope(r))
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) GetKPIs(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, h.KPISvc.Batch(r.Context(), readScope(r)))
}

func (h *dashboardHandlers) RefreshKPIs(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, h.KPISvc.Refresh(r.Context(), readScope(r)))
}

func (h *dashboardHandlers) GetGeoMap(w http.ResponseWriter, r *http.Request) {
	data, err := h.GeoSvc.Build(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, geoResponse{
		OK:          true,
		GeneratedAt: h.now(),
		Data:        data,
	})
}

func (h *dashboardHandlers) GetLayout(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.LayoutSvc.Get(r.Context(), uid))
}

func (h *dashboardHandlers) PutLayout(w http.ResponseWriter, r *http.Request) {
	var l dto.DashboardLayout
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid layout body"))
		return
	}
	uid := middleware.UID(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.LayoutSvc.Save(r.Context(), uid, l))
}

func (h *dashboardHandlers) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.LayoutSvc.Reset(r.Context(), uid))
}

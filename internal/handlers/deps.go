package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Catalog         *catalog.Catalog
	Dispatcher      WidgetDispatcher
	KPISvc          KPIService
	GeoSvc          GeoService
	LayoutSvc       LayoutService
}

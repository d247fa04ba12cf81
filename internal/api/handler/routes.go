package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/traffic-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Dashboard(st StateStore, service analyzing.DashboardService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/status",
			Method:      http.MethodGet,
			Handler:     GetDashboardStatus(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshDashboard(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/dashboard/error",
			Method:      http.MethodDelete,
			Handler:     ClearDashboardError(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/kpis",
			Method:      http.MethodGet,
			Handler:     GetKPIs(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/summary",
			Method:      http.MethodGet,
			Handler:     GetSummary(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Campaigns(st StateStore, service analyzing.DashboardService, writer CampaignStatusWriter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/top",
			Method:      http.MethodGet,
			Handler:     GetTopCampaigns(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/biggest-changes",
			Method:      http.MethodGet,
			Handler:     GetBiggestChanges(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/status",
			Method:      http.MethodPut,
			Handler:     ToggleCampaignStatus(st, writer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Trends(st StateStore, service analyzing.DashboardService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/trends",
			Method:      http.MethodGet,
			Handler:     GetTrends(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/trends/analysis",
			Method:      http.MethodGet,
			Handler:     GetTrendAnalysis(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/storefronts",
			Method:      http.MethodGet,
			Handler:     GetStorefronts(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/regions/performance",
			Method:      http.MethodGet,
			Handler:     GetRegionalPerformance(st, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Filters(st StateStore) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/filters",
			Method:      http.MethodGet,
			Handler:     GetFilters(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/filters/date-range",
			Method:      http.MethodPut,
			Handler:     SetDateRange(st, time.Now),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/filters/tab",
			Method:      http.MethodPut,
			Handler:     SetSelectedTab(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/filters/sort",
			Method:      http.MethodPut,
			Handler:     SetSort(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/filters/selection",
			Method:      http.MethodPut,
			Handler:     UpdateSelection(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/filters/tags/:tag",
			Method:      http.MethodPost,
			Handler:     ToggleFilterTag(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/filters/tags",
			Method:      http.MethodDelete,
			Handler:     ClearFilterTags(st),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

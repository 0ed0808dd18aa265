package handler

import (
	"net/http"

	"github.com/pixecom/ads-performance-api/internal/api/handler/router"
	"github.com/pixecom/ads-performance-api/internal/usecases/reporting"
	"github.com/pixecom/ads-performance-api/internal/usecases/syncing"
	"github.com/pixecom/ads-performance-api/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Campaigns(service reporting.CampaignReporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     GetCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.SellerScoped()},
		},
		{
			Path:        "/v1/campaigns/summary",
			Method:      http.MethodGet,
			Handler:     GetAccountSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.SellerScoped()},
		},
	}
}

func Sync(service syncing.SyncScheduler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/sync",
			Method:      http.MethodPost,
			Handler:     EnqueueCampaignSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.SellerScoped()},
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

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pixecom/ads-performance-api/internal/domain"
	"github.com/pixecom/ads-performance-api/internal/metrics"
	"github.com/pixecom/ads-performance-api/internal/usecases/reporting"
	"github.com/pixecom/ads-performance-api/pkg/apiErrors"
	"github.com/pixecom/ads-performance-api/pkg/log"
	"github.com/pixecom/ads-performance-api/pkg/middleware"
	"github.com/pixecom/ads-performance-api/pkg/utils"
)

// GetCampaigns lista as campanhas do seller autenticado com as métricas
// agregadas do período. Toda a validação de entrada acontece aqui; o motor
// de agregação assume parâmetros já validados.
func GetCampaigns(service reporting.CampaignReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sellerID, ok := middleware.SellerFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Identidade do seller ausente", nil)
			return
		}

		filters, errMsg := parseListFilters(r)
		if errMsg != "" {
			logger.WithFields(log.Fields{
				"seller_id": sellerID,
				"error":     errMsg,
			}).Warn("campaigns: invalid listing parameters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, errMsg, nil)
			return
		}

		logger.WithFields(log.Fields{
			"seller_id": sellerID,
			"sort_by":   string(filters.SortBy),
			"limit":     filters.Limit,
		}).Debug("campaigns: fetching campaign page")

		response, err := service.GetCampaigns(sellerID, filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"seller_id": sellerID,
				"error":     err.Error(),
			}).Error("campaigns: failed to build campaign listing")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar campanhas", nil)
			return
		}

		metrics.CampaignsListed.Inc()
		metrics.CampaignRowsReturned.Observe(float64(len(response.Rows)))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"seller_id": sellerID,
				"error":     err.Error(),
			}).Error("campaigns: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetAccountSummary retorna os totais consolidados do seller no período.
func GetAccountSummary(service reporting.CampaignReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sellerID, ok := middleware.SellerFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Identidade do seller ausente", nil)
			return
		}

		startDate, endDate, errMsg := parseDateRange(r)
		if errMsg != "" {
			logger.WithFields(log.Fields{
				"seller_id": sellerID,
				"error":     errMsg,
			}).Warn("campaigns: invalid summary parameters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, errMsg, nil)
			return
		}

		summary, err := service.GetAccountSummary(sellerID, startDate, endDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"seller_id": sellerID,
				"error":     err.Error(),
			}).Error("campaigns: failed to build account summary")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consolidar métricas da conta", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithFields(log.Fields{
				"seller_id": sellerID,
				"error":     err.Error(),
			}).Error("campaigns: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// parseListFilters valida os parâmetros de query da listagem. Retorna a
// mensagem de erro vazia quando os filtros são válidos.
func parseListFilters(r *http.Request) (*domain.CampaignListFilters, string) {
	query := r.URL.Query()
	filters := &domain.CampaignListFilters{
		Limit:   domain.DefaultPageLimit,
		SortBy:  domain.SortFieldSpend,
		SortDir: domain.SortDesc,
	}

	startDate, err := utils.ParseDate(query.Get("dateFrom"))
	if err != nil {
		return nil, "dateFrom inválido, use o formato YYYY-MM-DD"
	}
	filters.StartDate = startDate

	endDate, err := utils.ParseDate(query.Get("dateTo"))
	if err != nil {
		return nil, "dateTo inválido, use o formato YYYY-MM-DD"
	}
	filters.EndDate = endDate

	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, "dateFrom não pode ser posterior a dateTo"
	}

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseCampaignStatusFilter(raw)
		if err != nil {
			return nil, "status inválido, use ACTIVE, PAUSED ou ARCHIVED"
		}
		filters.Status = &status
	}

	if raw := query.Get("sellpageId"); raw != "" {
		filters.SellpageID = &raw
	}

	if raw := query.Get("cursor"); raw != "" {
		filters.Cursor = &raw
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > domain.MaxPageLimit {
			return nil, "limit deve ser um inteiro entre 1 e 200"
		}
		filters.Limit = limit
	}

	if raw := query.Get("sortBy"); raw != "" {
		sortBy, err := domain.ParseSortField(raw)
		if err != nil {
			return nil, "sortBy inválido, use spend, roas ou purchases"
		}
		filters.SortBy = sortBy
	}

	if raw := query.Get("sortDir"); raw != "" {
		sortDir, err := domain.ParseSortDirection(raw)
		if err != nil {
			return nil, "sortDir inválido, use asc ou desc"
		}
		filters.SortDir = sortDir
	}

	filters.IncludeArchived = query.Get("includeArchived") == "true"

	return filters, ""
}

func parseDateRange(r *http.Request) (time.Time, time.Time, string) {
	query := r.URL.Query()
	today := utils.TodayUTC()

	startDate := today
	if raw := query.Get("dateFrom"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, "dateFrom inválido, use o formato YYYY-MM-DD"
		}
		startDate = *parsed
	}

	endDate := today
	if raw := query.Get("dateTo"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, "dateTo inválido, use o formato YYYY-MM-DD"
		}
		endDate = *parsed
	}

	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, "dateFrom não pode ser posterior a dateTo"
	}

	return startDate, endDate, ""
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pixecom/ads-performance-api/infrastructure/queue"
	"github.com/pixecom/ads-performance-api/internal/metrics"
	"github.com/pixecom/ads-performance-api/internal/usecases/syncing"
	"github.com/pixecom/ads-performance-api/pkg/apiErrors"
	"github.com/pixecom/ads-performance-api/pkg/log"
	"github.com/pixecom/ads-performance-api/pkg/middleware"
	"github.com/pixecom/ads-performance-api/pkg/utils"
)

// EnqueueSyncResponse é o corpo retornado pelo disparo manual de sincronização.
type EnqueueSyncResponse struct {
	Date   string   `json:"date"`
	JobIDs []string `json:"jobIds"`
}

// EnqueueCampaignSync dispara a sincronização manual de estatísticas do
// seller autenticado para a data informada (default: hoje em UTC).
func EnqueueCampaignSync(service syncing.SyncScheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sellerID, ok := middleware.SellerFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Identidade do seller ausente", nil)
			return
		}

		date := r.URL.Query().Get("date")
		if date != "" {
			if _, err := utils.ParseDate(date); err != nil {
				logger.WithFields(log.Fields{
					"seller_id": sellerID,
					"date":      date,
				}).Warn("sync: invalid date parameter")

				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date inválido, use o formato YYYY-MM-DD", nil)
				return
			}
		}

		jobIDs, err := service.EnqueueSync(r.Context(), sellerID, date)
		if err != nil {
			logger.WithFields(log.Fields{
				"seller_id": sellerID,
				"date":      date,
				"error":     err.Error(),
			}).Error("sync: failed to enqueue sync jobs")

			metrics.SyncEnqueueFailures.Inc()

			if errors.Is(err, queue.ErrQueueUnavailable) {
				apiErrors.WriteError(w, apiErrors.ErrQueueUnavailable, "Fila de sincronização indisponível, tente novamente", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao agendar sincronização", nil)
			return
		}

		metrics.SyncJobsEnqueued.WithLabelValues("manual").Add(float64(len(jobIDs)))

		logger.WithFields(log.Fields{
			"seller_id": sellerID,
			"jobs":      len(jobIDs),
		}).Info("sync: sync jobs enqueued")

		response := EnqueueSyncResponse{
			Date:   date,
			JobIDs: jobIDs,
		}
		if response.Date == "" {
			// Ecoa a data efetivamente agendada, não a que o cliente enviou.
			response.Date = utils.TodayUTC().Format("2006-01-02")
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"seller_id": sellerID,
				"error":     err.Error(),
			}).Error("sync: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

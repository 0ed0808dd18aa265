package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus do serviço de performance de anúncios.
var (
	CampaignsListed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pixecom",
		Subsystem: "ads",
		Name:      "campaigns_listed_total",
		Help:      "Total de requisições de listagem de campanhas atendidas",
	})

	CampaignRowsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pixecom",
		Subsystem: "ads",
		Name:      "campaign_rows_returned",
		Help:      "Distribuição do número de linhas por página de listagem",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
	})

	SyncJobsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pixecom",
		Subsystem: "ads",
		Name:      "sync_jobs_enqueued_total",
		Help:      "Total de jobs de sincronização enfileirados, por origem",
	}, []string{"source"})

	SyncEnqueueFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pixecom",
		Subsystem: "ads",
		Name:      "sync_enqueue_failures_total",
		Help:      "Total de falhas ao enfileirar jobs de sincronização",
	})
)

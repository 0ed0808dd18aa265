package syncing

import (
	"context"
	"time"

	"github.com/pixecom/ads-performance-api/infrastructure/queue"
	"github.com/pixecom/ads-performance-api/internal/domain"
	"github.com/pixecom/ads-performance-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SyncScheduler traduz um pedido de sincronização em jobs por nível de
// agregação, com identidade determinística para a deduplicação da fila.
type SyncScheduler interface {
	// EnqueueSync enfileira um job por nível (CAMPAIGN, ADSET, AD) para o
	// seller e a data informados e retorna os três ids construídos.
	EnqueueSync(ctx context.Context, sellerID, date string) ([]string, error)
}

// enqueueOptions são fixas por job de sincronização: 3 tentativas com
// backoff exponencial a partir de 60s, retenção limitada a 100 concluídos
// e 50 falhos para conter o crescimento da fila.
var enqueueOptions = queue.EnqueueOptions{
	Attempts: 3,
	Backoff: queue.BackoffPolicy{
		Type:  "exponential",
		Delay: 60 * time.Second,
	},
	KeepCompleted: 100,
	KeepFailed:    50,
}

type Service struct {
	queue queue.Queue
}

func NewService(q queue.Queue) SyncScheduler {
	return &Service{
		queue: q,
	}
}

func (s *Service) EnqueueSync(ctx context.Context, sellerID, date string) ([]string, error) {
	if sellerID == "" {
		return nil, errors.New("é necessário informar o seller")
	}

	if date == "" {
		date = utils.TodayUTC().Format(time.DateOnly)
	}

	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, errors.Wrapf(err, "data inválida para sincronização: %q", date)
	}

	// Id curto apenas para correlacionar os três enfileiramentos nos logs.
	attemptID, _ := utils.GenerateID()

	jobIDs := make([]string, 0, len(domain.AllEntityLevels))
	for _, level := range domain.AllEntityLevels {
		// Sincronização manual cobre um único dia: dateFrom == dateTo.
		jobID := domain.BuildSyncJobID(sellerID, date, date, level)

		payload := domain.SyncJobPayload{
			SellerID: sellerID,
			DateFrom: date,
			DateTo:   date,
			Level:    level,
		}

		// Se uma das três chamadas falhar, os jobs já enfileirados ficam na
		// fila; repetir a operação inteira é seguro porque a identidade
		// determinística transforma o reenfileiramento em no-op.
		if err := s.queue.Enqueue(ctx, jobID, payload, enqueueOptions); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"seller_id":  sellerID,
				"job_id":     jobID,
				"attempt_id": attemptID,
			}).Error("Erro ao enfileirar job de sincronização de estatísticas")
			return nil, errors.Wrap(err, "erro ao enfileirar job de sincronização")
		}

		jobIDs = append(jobIDs, jobID)
	}

	logrus.WithFields(logrus.Fields{
		"seller_id":  sellerID,
		"date":       date,
		"attempt_id": attemptID,
		"jobs":       len(jobIDs),
	}).Info("Jobs de sincronização de estatísticas enfileirados")

	return jobIDs, nil
}

package syncing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pixecom/ads-performance-api/infrastructure/queue"
	"github.com/pixecom/ads-performance-api/infrastructure/queue/mocks"
	"github.com/pixecom/ads-performance-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_EnqueueSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("Enfileira um job por nível com identidade determinística", func(t *testing.T) {
		mockQueue := mocks.NewMockQueue(ctrl)
		service := NewService(mockQueue)

		var enqueued []string
		mockQueue.EXPECT().
			Enqueue(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, jobID string, payload any, opts queue.EnqueueOptions) error {
				enqueued = append(enqueued, jobID)

				// Opções fixas de retentativa e retenção
				assert.Equal(t, 3, opts.Attempts)
				assert.Equal(t, "exponential", opts.Backoff.Type)
				assert.Equal(t, 60*time.Second, opts.Backoff.Delay)
				assert.Equal(t, 100, opts.KeepCompleted)
				assert.Equal(t, 50, opts.KeepFailed)

				body, ok := payload.(domain.SyncJobPayload)
				if assert.True(t, ok) {
					assert.Equal(t, "SELLER1", body.SellerID)
					assert.Equal(t, "2024-01-15", body.DateFrom)
					assert.Equal(t, "2024-01-15", body.DateTo)
				}

				return nil
			}).
			Times(3)

		jobIDs, err := service.EnqueueSync(ctx, "SELLER1", "2024-01-15")
		assert.NoError(t, err)

		expected := []string{
			"sync__SELLER1__2024-01-15__2024-01-15__CAMPAIGN",
			"sync__SELLER1__2024-01-15__2024-01-15__ADSET",
			"sync__SELLER1__2024-01-15__2024-01-15__AD",
		}
		assert.Equal(t, expected, jobIDs)
		assert.Equal(t, expected, enqueued)
	})

	t.Run("Duas chamadas com os mesmos argumentos produzem os mesmos ids", func(t *testing.T) {
		mockQueue := mocks.NewMockQueue(ctrl)
		service := NewService(mockQueue)

		mockQueue.EXPECT().
			Enqueue(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(6)

		first, err := service.EnqueueSync(ctx, "SELLER1", "2024-01-15")
		assert.NoError(t, err)

		second, err := service.EnqueueSync(ctx, "SELLER1", "2024-01-15")
		assert.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Data vazia - usa o dia corrente em UTC", func(t *testing.T) {
		mockQueue := mocks.NewMockQueue(ctrl)
		service := NewService(mockQueue)

		today := time.Now().UTC().Format(time.DateOnly)

		mockQueue.EXPECT().
			Enqueue(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(3)

		jobIDs, err := service.EnqueueSync(ctx, "SELLER1", "")
		assert.NoError(t, err)
		assert.Len(t, jobIDs, 3)
		assert.Equal(t, fmt.Sprintf("sync__SELLER1__%s__%s__CAMPAIGN", today, today), jobIDs[0])
	})

	t.Run("Data inválida - retorna erro sem tocar a fila", func(t *testing.T) {
		mockQueue := mocks.NewMockQueue(ctrl)
		service := NewService(mockQueue)

		jobIDs, err := service.EnqueueSync(ctx, "SELLER1", "15/01/2024")
		assert.Error(t, err)
		assert.Nil(t, jobIDs)
	})

	t.Run("Seller vazio - retorna erro sem tocar a fila", func(t *testing.T) {
		mockQueue := mocks.NewMockQueue(ctrl)
		service := NewService(mockQueue)

		jobIDs, err := service.EnqueueSync(ctx, "", "2024-01-15")
		assert.Error(t, err)
		assert.Nil(t, jobIDs)
	})

	t.Run("Fila indisponível - propaga o erro preservando a causa", func(t *testing.T) {
		mockQueue := mocks.NewMockQueue(ctrl)
		service := NewService(mockQueue)

		queueErr := fmt.Errorf("%w: connection refused", queue.ErrQueueUnavailable)

		mockQueue.EXPECT().
			Enqueue(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(queueErr)

		jobIDs, err := service.EnqueueSync(ctx, "SELLER1", "2024-01-15")
		assert.Error(t, err)
		assert.Nil(t, jobIDs)
		assert.True(t, errors.Is(err, queue.ErrQueueUnavailable))
	})
}

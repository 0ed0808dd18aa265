package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	repomocks "github.com/pixecom/ads-performance-api/infrastructure/repository/mocks"
	"github.com/pixecom/ads-performance-api/internal/domain"
	syncmocks "github.com/pixecom/ads-performance-api/internal/usecases/syncing/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(
	sellerRepo *repomocks.MockSellerRepository,
	dailyStatRepo *repomocks.MockDailyStatRepository,
	syncService *syncmocks.MockSyncScheduler,
	lookbackDays int,
) *StatsSyncService {
	return &StatsSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config: StatsSyncConfig{
			CronSchedule:      "0 3 * * *",
			LookbackDays:      lookbackDays,
			MaxConcurrentJobs: 2,
			RetentionDays:     90,
			SyncEnabled:       true,
		},
		sellerRepo:    sellerRepo,
		dailyStatRepo: dailyStatRepo,
		syncService:   syncService,
	}
}

func TestStatsSyncService_getDatesToProcess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(
		repomocks.NewMockSellerRepository(ctrl),
		repomocks.NewMockDailyStatRepository(ctrl),
		syncmocks.NewMockSyncScheduler(ctrl),
		3,
	)

	dates := service.getDatesToProcess()

	// Janela de lookback começa ontem e anda para trás
	assert.Len(t, dates, 3)
	now := time.Now().UTC()
	assert.Equal(t, now.AddDate(0, 0, -1).Format(time.DateOnly), dates[0])
	assert.Equal(t, now.AddDate(0, 0, -2).Format(time.DateOnly), dates[1])
	assert.Equal(t, now.AddDate(0, 0, -3).Format(time.DateOnly), dates[2])
}

func TestStatsSyncService_syncAllSellers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name    string
		sellers []*domain.Seller
		setup   func(sellerRepo *repomocks.MockSellerRepository, dailyStatRepo *repomocks.MockDailyStatRepository, syncService *syncmocks.MockSyncScheduler, sellers []*domain.Seller)
	}{
		{
			name: "Enfileira todos os sellers ativos para cada dia da janela",
			sellers: []*domain.Seller{
				{ID: "SELLER1", Status: domain.SellerStatusActive},
				{ID: "SELLER2", Status: domain.SellerStatusActive},
			},
			setup: func(sellerRepo *repomocks.MockSellerRepository, dailyStatRepo *repomocks.MockDailyStatRepository, syncService *syncmocks.MockSyncScheduler, sellers []*domain.Seller) {
				dailyStatRepo.EXPECT().
					DeleteOlderThan(90).
					Return(int64(0), nil)

				sellerRepo.EXPECT().
					ListSellers([]domain.SellerStatus{domain.SellerStatusActive}).
					Return(sellers, nil)

				// 2 sellers x 2 dias de lookback
				syncService.EXPECT().
					EnqueueSync(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]string{"job1", "job2", "job3"}, nil).
					Times(4)
			},
		},
		{
			name: "Falha de um seller não interrompe a varredura dos demais",
			sellers: []*domain.Seller{
				{ID: "SELLER1", Status: domain.SellerStatusActive},
				{ID: "SELLER2", Status: domain.SellerStatusActive},
			},
			setup: func(sellerRepo *repomocks.MockSellerRepository, dailyStatRepo *repomocks.MockDailyStatRepository, syncService *syncmocks.MockSyncScheduler, sellers []*domain.Seller) {
				dailyStatRepo.EXPECT().
					DeleteOlderThan(90).
					Return(int64(0), nil)

				sellerRepo.EXPECT().
					ListSellers([]domain.SellerStatus{domain.SellerStatusActive}).
					Return(sellers, nil)

				syncService.EXPECT().
					EnqueueSync(gomock.Any(), "SELLER1", gomock.Any()).
					Return(nil, assert.AnError).
					Times(2)

				syncService.EXPECT().
					EnqueueSync(gomock.Any(), "SELLER2", gomock.Any()).
					Return([]string{"job1", "job2", "job3"}, nil).
					Times(2)
			},
		},
		{
			name:    "Nenhum seller ativo - varredura termina sem enfileirar nada",
			sellers: []*domain.Seller{},
			setup: func(sellerRepo *repomocks.MockSellerRepository, dailyStatRepo *repomocks.MockDailyStatRepository, syncService *syncmocks.MockSyncScheduler, sellers []*domain.Seller) {
				dailyStatRepo.EXPECT().
					DeleteOlderThan(90).
					Return(int64(0), nil)

				sellerRepo.EXPECT().
					ListSellers([]domain.SellerStatus{domain.SellerStatusActive}).
					Return(sellers, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sellerRepo := repomocks.NewMockSellerRepository(ctrl)
			dailyStatRepo := repomocks.NewMockDailyStatRepository(ctrl)
			syncService := syncmocks.NewMockSyncScheduler(ctrl)
			service := newTestService(sellerRepo, dailyStatRepo, syncService, 2)

			tt.setup(sellerRepo, dailyStatRepo, syncService, tt.sellers)

			service.syncAllSellers(context.Background())

			assert.False(t, service.syncRunning)
		})
	}
}

func TestStatsSyncService_Retencao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sellers := []*domain.Seller{{ID: "SELLER1", Status: domain.SellerStatusActive}}

	t.Run("Falha na retenção não impede o enfileiramento da varredura", func(t *testing.T) {
		sellerRepo := repomocks.NewMockSellerRepository(ctrl)
		dailyStatRepo := repomocks.NewMockDailyStatRepository(ctrl)
		syncService := syncmocks.NewMockSyncScheduler(ctrl)
		service := newTestService(sellerRepo, dailyStatRepo, syncService, 2)

		dailyStatRepo.EXPECT().
			DeleteOlderThan(90).
			Return(int64(0), assert.AnError)

		sellerRepo.EXPECT().
			ListSellers([]domain.SellerStatus{domain.SellerStatusActive}).
			Return(sellers, nil)

		syncService.EXPECT().
			EnqueueSync(gomock.Any(), "SELLER1", gomock.Any()).
			Return([]string{"job1", "job2", "job3"}, nil).
			Times(2)

		service.syncAllSellers(context.Background())
	})

	t.Run("Retenção desabilitada com janela não positiva", func(t *testing.T) {
		sellerRepo := repomocks.NewMockSellerRepository(ctrl)
		dailyStatRepo := repomocks.NewMockDailyStatRepository(ctrl)
		syncService := syncmocks.NewMockSyncScheduler(ctrl)
		service := newTestService(sellerRepo, dailyStatRepo, syncService, 2)
		service.config.RetentionDays = 0

		// Nenhuma expectativa de DeleteOlderThan: não pode ser chamado
		sellerRepo.EXPECT().
			ListSellers([]domain.SellerStatus{domain.SellerStatusActive}).
			Return(sellers, nil)

		syncService.EXPECT().
			EnqueueSync(gomock.Any(), "SELLER1", gomock.Any()).
			Return([]string{"job1", "job2", "job3"}, nil).
			Times(2)

		service.syncAllSellers(context.Background())
	})
}

func TestStatsSyncService_Start_Desabilitado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(
		repomocks.NewMockSellerRepository(ctrl),
		repomocks.NewMockDailyStatRepository(ctrl),
		syncmocks.NewMockSyncScheduler(ctrl),
		2,
	)
	service.config.SyncEnabled = false

	err := service.Start(context.Background())
	assert.NoError(t, err)
}

func TestStatsSyncService_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(
		repomocks.NewMockSellerRepository(ctrl),
		repomocks.NewMockDailyStatRepository(ctrl),
		syncmocks.NewMockSyncScheduler(ctrl),
		2,
	)

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 2, status["sync_lookback_days"])
	assert.Equal(t, 2, status["sync_max_concurrent"])
	assert.Equal(t, 90, status["sync_retention_days"])
}

// Lê o status concorrentemente com varreduras em andamento; os timestamps
// compartilhados são protegidos pelo mutex do serviço (verificado com -race).
func TestStatsSyncService_GetStatus_DuranteVarredura(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sellerRepo := repomocks.NewMockSellerRepository(ctrl)
	dailyStatRepo := repomocks.NewMockDailyStatRepository(ctrl)
	syncService := syncmocks.NewMockSyncScheduler(ctrl)
	service := newTestService(sellerRepo, dailyStatRepo, syncService, 1)

	dailyStatRepo.EXPECT().
		DeleteOlderThan(90).
		Return(int64(0), nil).
		AnyTimes()

	sellerRepo.EXPECT().
		ListSellers([]domain.SellerStatus{domain.SellerStatusActive}).
		Return([]*domain.Seller{{ID: "SELLER1", Status: domain.SellerStatusActive}}, nil).
		AnyTimes()

	syncService.EXPECT().
		EnqueueSync(gomock.Any(), "SELLER1", gomock.Any()).
		Return([]string{"job1"}, nil).
		AnyTimes()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			service.syncAllSellers(context.Background())
		}
	}()

	for i := 0; i < 100; i++ {
		service.GetStatus()
	}
	<-done

	status := service.GetStatus()
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pixecom/ads-performance-api/infrastructure/repository"
	"github.com/pixecom/ads-performance-api/internal/config"
	"github.com/pixecom/ads-performance-api/internal/domain"
	"github.com/pixecom/ads-performance-api/internal/metrics"
	"github.com/pixecom/ads-performance-api/internal/usecases/syncing"
	"github.com/sirupsen/logrus"
)

// StatsSyncConfig representa a configuração da varredura agendada de
// sincronização de estatísticas.
type StatsSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	RetentionDays     int
	SyncEnabled       bool
}

// StatsSyncService enfileira periodicamente os jobs de sincronização de
// todos os sellers ativos. A deduplicação por identidade na fila torna
// inofensiva a sobreposição com sincronizações manuais.
type StatsSyncService struct {
	scheduler           *gocron.Scheduler
	config              StatsSyncConfig
	sellerRepo          repository.SellerRepository
	dailyStatRepo       repository.DailyStatRepository
	syncService         syncing.SyncScheduler
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewStatsSyncService(
	sellerRepo repository.SellerRepository,
	dailyStatRepo repository.DailyStatRepository,
	syncService syncing.SyncScheduler,
	appConfig *config.Config,
) *StatsSyncService {
	syncConfig := StatsSyncConfig{
		CronSchedule:      appConfig.StatsSync.CronSchedule,
		LookbackDays:      appConfig.StatsSync.LookbackDays,
		MaxConcurrentJobs: appConfig.StatsSync.MaxConcurrentJobs,
		RetentionDays:     appConfig.StatsSync.RetentionDays,
		SyncEnabled:       appConfig.StatsSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"retention_days":      syncConfig.RetentionDays,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração da varredura de sincronização de estatísticas carregada")

	return &StatsSyncService{
		scheduler:     scheduler,
		config:        syncConfig,
		sellerRepo:    sellerRepo,
		dailyStatRepo: dailyStatRepo,
		syncService:   syncService,
		syncRunning:   false,
	}
}

// Start inicia o agendador
func (s *StatsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Varredura de sincronização de estatísticas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando varredura agendada de sincronização de estatísticas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllSellers(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de sincronização de estatísticas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando varredura de sincronização de estatísticas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllSellers enfileira os jobs de sincronização de todos os sellers ativos
func (s *StatsSyncService) syncAllSellers(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura de sincronização já em andamento, ignorando")
		return
	}
	startTime := time.Now()
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	s.pruneOldStats()

	activeSellers, err := s.getActiveSellers()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar sellers para a varredura de sincronização")
		return
	}

	if len(activeSellers) == 0 {
		logrus.Info("Nenhum seller ativo encontrado para a varredura de sincronização")
		return
	}

	dates := s.getDatesToProcess()
	logrus.WithFields(logrus.Fields{
		"sellers":    len(activeSellers),
		"days":       s.config.LookbackDays,
		"start_date": dates[len(dates)-1],
		"end_date":   dates[0],
	}).Info("Período da varredura de sincronização de estatísticas")

	s.enqueueForSellers(ctx, activeSellers, dates)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"sellers":  len(activeSellers),
		"days":     s.config.LookbackDays,
	}).Info("Varredura de sincronização de estatísticas concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// pruneOldStats apaga as linhas diárias fora da janela de retenção. Uma
// falha aqui não impede a varredura: a retenção volta a rodar na próxima.
func (s *StatsSyncService) pruneOldStats() {
	if s.config.RetentionDays <= 0 {
		return
	}

	deleted, err := s.dailyStatRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao aplicar retenção de estatísticas diárias")
		return
	}

	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": s.config.RetentionDays,
		}).Info("Retenção de estatísticas diárias aplicada")
	}
}

func (s *StatsSyncService) getActiveSellers() ([]*domain.Seller, error) {
	activeSellers, err := s.sellerRepo.ListSellers([]domain.SellerStatus{domain.SellerStatusActive})
	if err != nil {
		return nil, err
	}

	if len(activeSellers) == 0 {
		return []*domain.Seller{}, nil
	}

	return activeSellers, nil
}

// getDatesToProcess cria o conjunto de datas da janela de lookback,
// começando de ontem e indo para trás.
func (s *StatsSyncService) getDatesToProcess() []string {
	dates := make([]string, s.config.LookbackDays)
	for i := 0; i < s.config.LookbackDays; i++ {
		dates[i] = time.Now().UTC().AddDate(0, 0, -i-1).Format(time.DateOnly)
	}
	return dates
}

// enqueueForSellers enfileira os jobs de cada seller com concorrência limitada
func (s *StatsSyncService) enqueueForSellers(ctx context.Context, sellers []*domain.Seller, dates []string) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, seller := range sellers {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(seller *domain.Seller) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			for _, date := range dates {
				jobIDs, err := s.syncService.EnqueueSync(ctx, seller.ID, date)
				if err != nil {
					metrics.SyncEnqueueFailures.Inc()
					logrus.WithError(err).WithFields(logrus.Fields{
						"seller_id": seller.ID,
						"date":      date,
					}).Error("Erro ao enfileirar sincronização na varredura")
					continue
				}

				metrics.SyncJobsEnqueued.WithLabelValues("sweep").Add(float64(len(jobIDs)))

				logrus.WithFields(logrus.Fields{
					"seller_id": seller.ID,
					"date":      date,
					"jobs":      len(jobIDs),
				}).Debug("Sincronização enfileirada pela varredura")
			}
		}(seller)
	}

	wg.Wait()
}

// TriggerManualSync dispara manualmente uma varredura completa
func (s *StatsSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura de sincronização já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando varredura manual de sincronização de estatísticas")
	go s.syncAllSellers(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *StatsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	startedAt := s.lastSyncStartedAt
	completedAt := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_retention_days":    s.config.RetentionDays,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
}

package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/pixecom/ads-performance-api/infrastructure/database/postgres"
	"github.com/pixecom/ads-performance-api/infrastructure/database/redisdb"
	"github.com/pixecom/ads-performance-api/infrastructure/queue"
	"github.com/pixecom/ads-performance-api/infrastructure/repository"
	"github.com/pixecom/ads-performance-api/internal/api"
	"github.com/pixecom/ads-performance-api/internal/config"
	"github.com/pixecom/ads-performance-api/internal/scheduler"
	"github.com/pixecom/ads-performance-api/internal/usecases/reporting"
	"github.com/pixecom/ads-performance-api/internal/usecases/syncing"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisConn := redisconn(ctx, cfg.Redis)
	defer redisConn.Close()

	campaignRepo := repository.NewCampaignRepository(pgConn)
	dailyStatRepo := repository.NewDailyStatRepository(pgConn)
	sellerRepo := repository.NewSellerRepository(pgConn)

	syncQueue := queue.NewRedisQueue(
		redisConn.Client,
		cfg.Queue.Prefix,
		time.Duration(cfg.Queue.DedupTTLHours)*time.Hour,
	)

	reportingService := reporting.NewService(campaignRepo, dailyStatRepo)
	syncService := syncing.NewService(syncQueue)

	// Inicializa a varredura agendada de sincronização de estatísticas
	statsSyncService := scheduler.NewStatsSyncService(sellerRepo, dailyStatRepo, syncService, cfg)

	if err := statsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a varredura de sincronização de estatísticas")
	} else {
		logrus.Info("Varredura de sincronização de estatísticas iniciada com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		syncService,
		statsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisconn cria uma conexão com o Redis usado pela fila de sincronização
func redisconn(ctx context.Context, redisConfig config.Redis) *redisdb.Connection {
	conn, err := redisdb.NewConnection(ctx, redisConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return conn
}

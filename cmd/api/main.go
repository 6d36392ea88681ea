package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/clinsight/clinic-insights-api/infrastructure/database/postgres"
	"github.com/clinsight/clinic-insights-api/infrastructure/integrator/crm"
	"github.com/clinsight/clinic-insights-api/infrastructure/integrator/crm/crmclient"
	"github.com/clinsight/clinic-insights-api/infrastructure/repository"
	"github.com/clinsight/clinic-insights-api/internal/api"
	"github.com/clinsight/clinic-insights-api/internal/config"
	"github.com/clinsight/clinic-insights-api/internal/scheduler"
	"github.com/clinsight/clinic-insights-api/internal/usecases/aggregating"
	"github.com/clinsight/clinic-insights-api/internal/usecases/alerting"
	"github.com/clinsight/clinic-insights-api/internal/usecases/authenticating"
	clinicusecase "github.com/clinsight/clinic-insights-api/internal/usecases/clinic"
	"github.com/clinsight/clinic-insights-api/internal/usecases/ingesting"
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

	clinicRepo := repository.NewClinicRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	factRepo := repository.NewFactRepository(pgConn)
	batchRepo := repository.NewUploadBatchRepository(pgConn)
	rcaRepo := repository.NewRcaRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, clinicRepo, cfg)

	crmClient := crmclient.NewClient(cfg)
	crmIntegrator := crm.New(cfg, crmClient)

	clinicService := clinicusecase.NewService(clinicRepo)

	parser := ingesting.NewParser()
	ingestService := ingesting.NewIngestService(parser, factRepo, batchRepo)

	aggregator := aggregating.NewAggregator(cfg.Aggregation.FixedCostRate)
	snapshotService := aggregating.NewSnapshotService(factRepo, aggregator)

	alertService := alerting.NewAlertService(cfg.Thresholds, rcaRepo)

	// Inicializa os agendadores de sincronização e retenção
	crmSyncService := scheduler.NewCRMSyncService(
		clinicRepo,
		factRepo,
		crmIntegrator,
		cfg,
	)

	retentionSweepService := scheduler.NewRetentionSweepService(
		factRepo,
		batchRepo,
		cfg,
	)

	// Inicia os agendadores em background
	if err := crmSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização do CRM")
	} else {
		logrus.Info("Agendador de sincronização do CRM iniciado com sucesso")
	}

	if err := retentionSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de varredura de retenção")
	} else {
		logrus.Info("Agendador de varredura de retenção iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		ingestService,
		snapshotService,
		alertService,
		clinicService,
		authenticator,
		crmSyncService,        // Serviço de sincronização do CRM
		retentionSweepService, // Serviço de varredura de retenção
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

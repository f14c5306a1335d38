package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ops-api/infrastructure/repository"
	"github.com/vfg2006/sales-ops-api/internal/api"
	"github.com/vfg2006/sales-ops-api/internal/config"
	"github.com/vfg2006/sales-ops-api/internal/scheduler"
	"github.com/vfg2006/sales-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-ops-api/internal/usecases/classifying"
	"github.com/vfg2006/sales-ops-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-ops-api/internal/usecases/insighting"
	"github.com/vfg2006/sales-ops-api/internal/usecases/period"
	"github.com/vfg2006/sales-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-ops-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.WithError(err).Warn("Nível de log inválido, usando 'info'")
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	dealRepo := repository.NewDealRepository(pgConn)
	rosterRepo := repository.NewRosterRepository(pgConn)
	snapshotRepo := repository.NewRankingSnapshotRepository(pgConn)

	resolver := newResolver(cfg.Period)

	classifier := classifying.New(classifying.Taxonomy(cfg.Taxonomy))
	aggregator := insighting.NewAggregator(classifier)

	dashboardService := dashboard.NewService(dealRepo, rosterRepo, resolver, aggregator)
	snapshotService := ranking.NewRankingSnapshotService(snapshotRepo)
	authenticator := authenticating.NewService(cfg.Auth)

	rankingSnapshotSyncService := scheduler.NewRankingSnapshotSyncService(
		dealRepo,
		rosterRepo,
		snapshotRepo,
		resolver,
		ranking.NewEngine(aggregator),
		cfg,
	)

	if err := rankingSnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do snapshot de ranking")
	} else {
		logrus.Info("Agendador do snapshot de ranking iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		dashboardService,
		snapshotService,
		authenticator,
		rankingSnapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newResolver monta o resolvedor de períodos com o fuso e o início de semana configurados
func newResolver(cfg config.Period) *period.Resolver {
	location, err := cfg.Location()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o fuso horário")
	}

	weekStart, err := period.ParseWeekday(cfg.WeekStart)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler o primeiro dia da semana")
	}

	logrus.WithFields(logrus.Fields{
		"timezone":   location.String(),
		"week_start": weekStart.String(),
	}).Info("Resolvedor de períodos configurado")

	return period.NewResolver(location, weekStart)
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

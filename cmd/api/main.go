package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecadmin/internal/config"
	"ecadmin/internal/domain/orderview"
	"ecadmin/internal/handler"
	"ecadmin/internal/infra/db"
	infraRepo "ecadmin/internal/infra/repository"
	"ecadmin/internal/infra/sanity"
	"ecadmin/internal/logger"
	"ecadmin/internal/middleware"
	repo "ecadmin/internal/repository"
	"ecadmin/internal/server"
	"ecadmin/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 起動時の一括読み込みの上限
const initialLoadTimeout = 30 * time.Second

func main() {
	//.env は無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Setup("dev", "info")
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.GoEnv, cfg.LogLevel)

	//監査ログ（DATABASE_URL が無ければ保存しない）
	auditRepo, gormDB := newAuditRepository(cfg)
	if gormDB != nil {
		defer func() {
			if err := db.Close(gormDB); err != nil {
				log.Warn().Err(err).Msg("failed to close database")
			}
		}()
	}

	//バックエンド（コンテンツレイク）
	client, err := sanity.NewClient(sanity.Config{
		ProjectID:  cfg.Sanity.ProjectID,
		Dataset:    cfg.Sanity.Dataset,
		APIVersion: cfg.Sanity.APIVersion,
		Token:      cfg.Sanity.Token,
		UseCDN:     cfg.Sanity.UseCDN,
		BaseURL:    cfg.Sanity.BaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create sanity client")
	}

	engineOpts := []orderview.Option{
		orderview.WithCustomerCountMode(cfg.CustomerCountMode),
		orderview.WithCustomerCascade(cfg.DeleteCustomerWithOrder),
	}

	//Usecase生成
	clock := &realClock{}
	orders := usecase.NewOrderDashboard(sanity.NewOrderStore(client), auditRepo, clock, engineOpts...)
	rentals := usecase.NewRentalOrderDashboard(sanity.NewRentalOrderStore(client), auditRepo, clock, engineOpts...)
	overview := usecase.NewOverviewUsecase(orders, rentals)

	//初回読み込み。失敗しても空の一覧で起動し、reload で取り直せる
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), initialLoadTimeout)
	if err := overview.LoadAll(loadCtx); err != nil {
		log.Warn().Err(err).Msg("initial load failed, starting with empty snapshot")
	}
	cancelLoad()

	//認証
	verifier, err := middleware.NewVerifier(cfg.JWTSecret, cfg.JWTPublicKeyPEM)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session verifier")
	}
	isAdmin := middleware.EmailAdmin(cfg.AdminEmail)
	if cfg.AdminEmail == "" {
		log.Warn().Msg("ADMIN_EMAIL is empty: nobody can access the admin dashboard")
	}

	//Handler生成
	srv := server.New(cfg, server.Routes{
		Verifier:     verifier,
		IsAdmin:      isAdmin,
		RedirectTo:   cfg.AuthRedirectURL,
		Auth:         handler.NewAuthHandler(isAdmin),
		Dashboard:    handler.NewDashboardHandler(overview),
		Orders:       handler.NewAdminOrderHandler(orders),
		RentalOrders: handler.NewAdminOrderHandler(rentals),
		AuditLogs:    handler.NewAuditLogHandler(usecase.NewAuditLogUsecase(auditRepo)),
	})

	//Server起動
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func newAuditRepository(cfg config.Config) (repo.AuditLogRepository, *gorm.DB) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("DATABASE_URL is empty: audit logs are discarded")
		return infraRepo.NewAuditLogDiscardRepository(), nil
	}

	gormDB, err := db.Connect(cfg.DatabaseURL, !cfg.IsProd())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	return infraRepo.NewAuditLogGormRepository(gormDB), gormDB
}

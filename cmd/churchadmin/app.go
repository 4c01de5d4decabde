package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"churchconnect/config"
	authadapter "churchconnect/internal/adapters/auth"
	emailadapter "churchconnect/internal/adapters/email"
	mediaadapter "churchconnect/internal/adapters/media"
	delivery "churchconnect/internal/delivery/http"
	"churchconnect/internal/delivery/http/controllers"
	"churchconnect/internal/domain"
	"churchconnect/internal/metrics"
	"churchconnect/internal/repository/postgres"
	"churchconnect/internal/services"
	"churchconnect/web"

	_ "churchconnect/docs"
)

// app holds the wired dependencies of a running server.
type app struct {
	db      *sql.DB
	auth    domain.AuthService
	handler http.Handler
}

// openDB connects to the database and creates any missing tables.
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newAuthService(db *sql.DB, cfg *config.Config) domain.AuthService {
	return services.NewAuthService(
		postgres.NewAdminRepository(db),
		authadapter.NewBcryptHasher(0),
		authadapter.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
		cfg.RequestTimeout,
	)
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Repositories
	sermonRepo := postgres.NewSermonRepository(db)
	topicRepo := postgres.NewTopicRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	activityRepo := postgres.NewActivityRepository(db)

	// Adapters
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.SES.Region,
			AccessKeyID:        cfg.SES.AccessKeyID,
			SecretAccessKey:    cfg.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.SES.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating mailer: %w", err)
	}
	renderer, err := emailadapter.NewTemplateRenderer()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading email templates: %w", err)
	}
	store, err := mediaadapter.NewStore(mediaadapter.Config{
		Provider: cfg.Media.Provider,
		Local:    mediaadapter.LocalConfig{Dir: cfg.Media.Dir, BaseURL: cfg.Media.BaseURL},
		S3: mediaadapter.S3Config{
			EndpointURL:     cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			ForcePathStyle:  cfg.S3.ForcePathStyle,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
		},
	}, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating media store: %w", err)
	}
	static, err := web.Assets(cfg.StaticDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading front end: %w", err)
	}

	// Services
	authService := newAuthService(db, cfg)
	emailService := services.NewEmailService(mailer, renderer, logger)
	topicService := services.NewTopicService(topicRepo, sermonRepo, cfg.RequestTimeout)
	sermonService := services.NewSermonService(sermonRepo, topicService, activityRepo, logger, cfg.RequestTimeout)
	eventService := services.NewEventService(eventRepo, emailService, activityRepo, logger, cfg.RequestTimeout)
	dashboardService := services.NewDashboardService(statsRepo, activityRepo, cfg.RequestTimeout)
	mediaService := services.NewMediaService(store, cfg.MaxUploadBytes())

	// Controllers
	maxUpload := cfg.MaxUploadBytes()
	ctrls := delivery.Controllers{
		Auth:      controllers.NewAuthController(logger, authService),
		Sermons:   controllers.NewSermonController(logger, sermonService, mediaService, maxUpload),
		Topics:    controllers.NewTopicController(logger, topicService),
		Events:    controllers.NewEventController(logger, eventService, mediaService, maxUpload),
		Dashboard: controllers.NewDashboardController(logger, dashboardService),
		Media:     controllers.NewMediaController(logger, mediaService, maxUpload),
	}

	opts := delivery.RouterOptions{
		Logger:      logger,
		Verifier:    authadapter.NewJWTVerifier(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Static:      static,
	}
	if store.IsLocal() {
		opts.MediaDir = cfg.Media.Dir
		opts.MediaPrefix = cfg.Media.BaseURL
	}

	metrics.Register()

	return &app{
		db:      db,
		auth:    authService,
		handler: delivery.NewRouter(opts, ctrls),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

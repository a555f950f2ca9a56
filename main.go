package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	api "cryptnote-backend/cmd/api"
	authdomain "cryptnote-backend/internal/auth/domain"
	authRepo "cryptnote-backend/internal/auth/repository"
	"cryptnote-backend/internal/auth/scheduler"
	authUsecase "cryptnote-backend/internal/auth/usecase"
	notedomain "cryptnote-backend/internal/note/domain"
	noteRepo "cryptnote-backend/internal/note/repository"
	noteUsecase "cryptnote-backend/internal/note/usecase"
	"cryptnote-backend/pkg/config"
	"cryptnote-backend/pkg/database"
	"cryptnote-backend/pkg/mailer"
	"cryptnote-backend/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := database.AutoMigrate(db, &authdomain.User{}, &authdomain.ResetToken{}, &authdomain.OtpToken{}, &notedomain.Note{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Metrics
	var (
		collector *metrics.Collector
		gatherer  prometheus.Gatherer
		recorder  metrics.Recorder = metrics.Nop{}
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector = metrics.NewCollector(reg)
		gatherer = reg
		recorder = collector
	}

	// Outgoing mail
	var sender mailer.Sender
	if cfg.SenderEmail != "" {
		sender = mailer.NewSMTPSender(mailer.SMTPSettings{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SenderEmail,
			Password: cfg.EmailPassword,
			FromName: cfg.MailFromName,
		})
	} else {
		log.Println("[WARN] SENDER_EMAIL not configured, emails will be logged instead of sent")
		sender = mailer.NewLogSender()
	}
	mail := mailer.New(sender, cfg.MailFromName, recorder)

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	resetTokenRepo := authRepo.NewResetTokenRepository(db)
	otpTokenRepo := authRepo.NewOtpTokenRepository(db)
	noteRepository := noteRepo.NewGormNoteRepository(db)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, resetTokenRepo, otpTokenRepo, mail, cfg)
	noteUsecaseInstance := noteUsecase.NewNoteUsecase(noteRepository)

	// Deleting an account removes its notes
	authUsecaseInstance.SetUserDeletedCallback(noteUsecaseInstance.DeleteAllForUser)

	handler := api.NewHandler(authUsecaseInstance, noteUsecaseInstance, cfg, collector, gatherer)
	sweeper := scheduler.NewTokenSweeper(resetTokenRepo, otpTokenRepo, cfg.TokenSweepInterval, recorder)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Serve(gctx, ":"+cfg.Port)
	})
	g.Go(func() error {
		return sweeper.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server stopped with error:", err)
	}
	log.Println("Server stopped")
}

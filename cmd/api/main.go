package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wifiric-backend/internal/config"
	"wifiric-backend/internal/db"
	"wifiric-backend/internal/discord"
	"wifiric-backend/internal/httpserver"
	contactrepo "wifiric-backend/internal/repository/contact"
	orderrepo "wifiric-backend/internal/repository/order"
	profilerepo "wifiric-backend/internal/repository/profile"
	reviewrepo "wifiric-backend/internal/repository/review"
	sessionrepo "wifiric-backend/internal/repository/session"
	contactsvc "wifiric-backend/internal/service/contact"
	notifysvc "wifiric-backend/internal/service/notify"
	ordersvc "wifiric-backend/internal/service/order"
	reviewsvc "wifiric-backend/internal/service/review"
	sessionsvc "wifiric-backend/internal/service/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	contactRepo := contactrepo.NewPostgres(dbpool)
	reviewRepo := reviewrepo.NewPostgres(dbpool)
	profileRepo := profilerepo.NewPostgres(dbpool)
	sessRepo := sessionrepo.NewPostgres(dbpool)

	discordClient := discord.New(cfg.DiscordAPIBase, cfg.DiscordBotToken, logger)
	notifyService := notifysvc.New(discordClient, orderRepo, contactRepo, cfg.DiscordCategoryID, logger)

	orderService := ordersvc.New(orderRepo)
	contactService := contactsvc.New(contactRepo, notifyService, logger)
	reviewService := reviewsvc.New(reviewRepo)
	sessionService := sessionsvc.New(sessRepo, profileRepo, cfg.SessionTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:  sessionService,
		Orders:    orderService,
		Contacts:  contactService,
		Reviews:   reviewService,
		Notify:    notifyService,
		InviteURL: cfg.DiscordInviteURL,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

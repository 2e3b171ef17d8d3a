package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sm-social/chatcore/internal/adapters/completion"
	"github.com/sm-social/chatcore/internal/adapters/httpapi"
	"github.com/sm-social/chatcore/internal/adapters/storage/memory"
	"github.com/sm-social/chatcore/internal/app/assistant"
	"github.com/sm-social/chatcore/internal/app/events"
	"github.com/sm-social/chatcore/internal/app/messaging"
	"github.com/sm-social/chatcore/internal/app/resolver"
	"github.com/sm-social/chatcore/internal/app/roster"
	"github.com/sm-social/chatcore/internal/config"
	"github.com/sm-social/chatcore/internal/domain"
	"github.com/sm-social/chatcore/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.Logger().Error("failed to load config", "error", err)
		os.Exit(1)
	}
	observability.Init(cfg.LogLevel)
	log := observability.Logger()

	// The current user is an external fact supplied by the auth
	// collaborator; stand in a fixed local identity here.
	me := domain.Participant{ID: "u-1", Name: "You", Avatar: "https://i.pravatar.cc/150?u=me"}
	stores := memory.NewStores(me)
	if cfg.SeedDemoData {
		log.Info("seeding demo data")
		stores.SeedDemo()
	}

	var completionClient domain.CompletionClient
	if cfg.UseMockCompletion {
		log.Info("using mock completion client")
		completionClient = completion.NewMock()
	} else {
		log.Info("using openai-compatible completion client",
			"base_url", cfg.CompletionBaseURL, "model", cfg.CompletionModel)
		completionClient = completion.NewOpenAIClient(
			cfg.CompletionAPIKey, cfg.CompletionBaseURL, cfg.CompletionModel)
	}

	res := resolver.New(stores.Chats, stores.Groups, stores.Events)
	msgSvc := messaging.NewService(stores.Messages, stores.Profiles)
	asstSvc := assistant.NewService(stores.Sessions, msgSvc, completionClient, stores.Messages)
	evtSvc := events.NewService(stores.Events, stores.Profiles)
	rostSvc := roster.NewService(stores.Chats, stores.Groups, stores.Profiles)

	handler := httpapi.NewServer(res, msgSvc, asstSvc, evtSvc, rostSvc)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	go func() {
		log.Info("chatcore API listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}

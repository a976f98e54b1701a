package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/apexfx-session/pkg/config"
	"github.com/chris/apexfx-session/pkg/handlers"
	"github.com/chris/apexfx-session/pkg/notify"
	"github.com/chris/apexfx-session/pkg/session"
	"github.com/chris/apexfx-session/pkg/storage"
	dydbstore "github.com/chris/apexfx-session/pkg/storage/dynamodb"
	"github.com/chris/apexfx-session/pkg/storage/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// AWS clients are only needed for the DynamoDB redirect store and SQS events.
	var awsCfg *aws.Config
	loadAWS := func() aws.Config {
		if awsCfg == nil {
			c, err := awsconfig.LoadDefaultConfig(context.TODO())
			if err != nil {
				log.Fatalf("unable to load SDK config, %v", err)
			}
			awsCfg = &c
		}
		return *awsCfg
	}

	var redirects storage.RedirectStore
	switch cfg.RedirectStore {
	case config.RedirectStoreDynamoDB:
		redirects = dydbstore.New(dynamodb.NewFromConfig(loadAWS()), cfg.RedirectsTableName, cfg.RedirectTTL)
	default:
		redirects = memory.NewRedirectStore(cfg.RedirectTTL)
	}

	var publisher notify.Publisher = &notify.NoOpPublisher{}
	if cfg.EventsQueueURL != "" {
		publisher = notify.NewSQSPublisher(sqs.NewFromConfig(loadAWS()), cfg.EventsQueueURL)
	}

	store := session.New(
		session.WithRedirectStore(redirects),
		session.WithStartingBalance(cfg.StartingBalance),
	)

	handler := handlers.NewApiHandler(store, publisher)
	router := handlers.NewRouter(handler, store, logger)

	log.Printf("Starting server on port %s", cfg.HTTPPort)

	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

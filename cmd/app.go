package cmd

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"schedbot/clients"
	anthropicclient "schedbot/clients/anthropic"
	slackclient "schedbot/clients/slack"
	"schedbot/config"
	"schedbot/db"
	"schedbot/services/eventanalyses"
	"schedbot/services/scheduledevents"
	"schedbot/services/slackmessages"
	"schedbot/services/txmanager"
	"schedbot/usecases/extraction"
	"schedbot/usecases/ingestion"
	"schedbot/usecases/notification"
)

// app wires configuration, clients, repositories, services and usecases for
// one command invocation.
type app struct {
	cfg    *config.AppConfig
	dbConn *sqlx.DB

	slackClient clients.SlackClient
	llmClient   clients.LLMClient

	ingestion    *ingestion.IngestionUseCase
	extraction   *extraction.ExtractionUseCase
	notification *notification.NotificationUseCase
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slackMessagesRepo := db.NewPostgresSlackMessagesRepository(dbConn, cfg.DatabaseSchema)
	eventAnalysesRepo := db.NewPostgresEventAnalysesRepository(dbConn, cfg.DatabaseSchema)
	scheduledEventsRepo := db.NewPostgresScheduledEventsRepository(dbConn, cfg.DatabaseSchema)

	slackMessagesService := slackmessages.NewSlackMessagesService(slackMessagesRepo)
	eventAnalysesService := eventanalyses.NewEventAnalysesService(eventAnalysesRepo)
	scheduledEventsService := scheduledevents.NewScheduledEventsService(scheduledEventsRepo)
	txManager := txmanager.NewTransactionManager(dbConn)

	slackClient := slackclient.NewSlackClient(cfg.SlackConfig.BotToken)
	llmClient := anthropicclient.NewAnthropicClient(cfg.AnthropicConfig.APIKey, cfg.AnthropicConfig.Model)

	cooldown := time.Duration(cfg.NotificationCooldownMinutes) * time.Minute

	return &app{
		cfg:         cfg,
		dbConn:      dbConn,
		slackClient: slackClient,
		llmClient:   llmClient,
		ingestion: ingestion.NewIngestionUseCase(
			slackClient,
			slackMessagesService,
			cfg.SlackConfig.SourceChannelID,
			cfg.FetchMessageLimit,
		),
		extraction: extraction.NewExtractionUseCase(
			llmClient,
			slackMessagesService,
			eventAnalysesService,
			scheduledEventsService,
			txManager,
		),
		notification: notification.NewNotificationUseCase(
			slackClient,
			slackMessagesService,
			scheduledEventsService,
			cfg.SlackConfig.NotificationChannelID,
			cooldown,
		),
	}, nil
}

func (a *app) Close() error {
	return a.dbConn.Close()
}

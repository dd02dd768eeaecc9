package di

import (
	"context"
	"time"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	cmdhandlers "appprove-backend/application/commands/handlers"
	"appprove-backend/application/ports"
	"appprove-backend/application/queries"
	querybus "appprove-backend/application/queries/bus"
	qryhandlers "appprove-backend/application/queries/handlers"
	"appprove-backend/infrastructure/acl"
	"appprove-backend/infrastructure/config"
	"appprove-backend/infrastructure/messaging"
	"appprove-backend/infrastructure/messaging/eventbridge"
	"appprove-backend/infrastructure/observability"
	ddbstore "appprove-backend/infrastructure/persistence/dynamodb"
	"appprove-backend/infrastructure/persistence/draftcache"
	supaadapter "appprove-backend/infrastructure/supabase"
	"appprove-backend/interfaces/http/rest/middleware"
	"appprove-backend/pkg/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

// Drafts older than this are expired server-side.
const draftTTL = 90 * 24 * time.Hour

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDynamicConfig starts the dynamic configuration watcher.
func ProvideDynamicConfig(cfg *config.Config, logger *zap.Logger) (*config.Watcher, error) {
	return config.NewWatcher(cfg.DynamicConfigPath, logger)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideSupabaseClient creates the Supabase client
func ProvideSupabaseClient(cfg *config.Config) (*supabase.Client, error) {
	return supaadapter.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)
}

// ProvideKeyValueStore creates the DynamoDB draft field store
func ProvideKeyValueStore(client *awsdynamodb.Client, cfg *config.Config) ports.KeyValueStore {
	return ddbstore.NewKVStore(client, cfg.DraftsTable, draftTTL)
}

// ProvideDraftStore creates the typed draft store
func ProvideDraftStore(kv ports.KeyValueStore, logger *zap.Logger) ports.DraftStore {
	return draftcache.New(kv, logger)
}

// ProvideOfferRepository creates the Supabase offer repository
func ProvideOfferRepository(client *supabase.Client, logger *zap.Logger) ports.OfferRepository {
	return supaadapter.NewOfferRepository(client, logger)
}

// ProvideKeywordCatalog creates the Supabase keyword catalog
func ProvideKeywordCatalog(client *supabase.Client, logger *zap.Logger) ports.KeywordCatalog {
	return supaadapter.NewKeywordCatalog(client, logger)
}

// ProvideSurveyRepository creates the Supabase survey repository
func ProvideSurveyRepository(client *supabase.Client, logger *zap.Logger) ports.SurveyRepository {
	return supaadapter.NewSurveyRepository(client, logger)
}

// ProvideRepositoryLister creates the GitHub repository lister
func ProvideRepositoryLister(cfg *config.Config, logger *zap.Logger) ports.RepositoryLister {
	return acl.NewGitHubLister(cfg.GitHubAPIBaseURL, logger)
}

// ProvidePaymentService creates the payment provider adapter
func ProvidePaymentService(cfg *config.Config, collector *observability.Collector, logger *zap.Logger) ports.PaymentService {
	return acl.NewPaymentAdapter(cfg.PaymentAPIBaseURL, cfg.PaymentAPIKey, collector, logger)
}

// ProvideEventBus creates the event bus; disabled environments drop
// events on the floor.
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	if !cfg.EnableEvents {
		return messaging.NewNoopEventBus()
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideCollector creates the Prometheus metrics collector
func ProvideCollector() *observability.Collector {
	return observability.NewCollector("appprove")
}

// ProvideOrchestrator creates the submit orchestrator, wired to the
// dynamic budget ceiling.
func ProvideOrchestrator(
	drafts ports.DraftStore,
	offers ports.OfferRepository,
	payments ports.PaymentService,
	eventBus ports.EventBus,
	dynamic *config.Watcher,
	logger *zap.Logger,
) *cmdhandlers.SubmitOfferOrchestrator {
	return cmdhandlers.NewSubmitOfferOrchestrator(
		drafts, offers, payments, eventBus, dynamic.MaxBudget, logger,
	)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	drafts ports.DraftStore,
	offers ports.OfferRepository,
	catalog ports.KeywordCatalog,
	surveys ports.SurveyRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()
	logging := bus.LoggingMiddleware(logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.RegisterKeywordCommand{}, cmdhandlers.NewRegisterKeywordHandler(catalog, eventBus, logger)},
		{commands.JoinOfferCommand{}, cmdhandlers.NewParticipationHandler(offers, eventBus, logger)},
		{commands.LeaveOfferCommand{}, cmdhandlers.NewParticipationHandler(offers, eventBus, logger)},
		{commands.SaveDraftCommand{}, cmdhandlers.NewSaveDraftHandler(drafts, logger)},
		{commands.ClearDraftCommand{}, cmdhandlers.NewClearDraftHandler(drafts, logger)},
		{commands.SubmitSurveyCommand{}, cmdhandlers.NewSubmitSurveyHandler(surveys, logger)},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, bus.Wrap(reg.handler, logging)); err != nil {
			return nil, err
		}
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	drafts ports.DraftStore,
	offers ports.OfferRepository,
	catalog ports.KeywordCatalog,
	lister ports.RepositoryLister,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.ListOffersQuery{}, qryhandlers.NewListOffersHandler(offers, logger)},
		{queries.GetOfferQuery{}, qryhandlers.NewGetOfferHandler(offers, logger)},
		{queries.ListKeywordsQuery{}, qryhandlers.NewListKeywordsHandler(catalog, logger)},
		{queries.ListRepositoriesQuery{}, qryhandlers.NewListRepositoriesHandler(lister, logger)},
		{queries.GetDraftQuery{}, qryhandlers.NewGetDraftHandler(drafts, logger)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}

// ProvideAuthenticator creates the auth middleware. Without a JWT secret
// every token is verified against the Supabase auth API.
func ProvideAuthenticator(cfg *config.Config, client *supabase.Client, logger *zap.Logger) (*middleware.Authenticator, error) {
	var validator *auth.JWTValidator
	if cfg.JWTSecret != "" {
		v, err := auth.NewJWTValidator(auth.JWTConfig{
			SecretKey: cfg.JWTSecret,
			Issuer:    cfg.JWTIssuer,
		})
		if err != nil {
			return nil, err
		}
		validator = v
	}
	verifier := supaadapter.NewIdentityVerifier(client, logger)
	return middleware.NewAuthenticator(validator, verifier, logger), nil
}

// Package rest wires the HTTP API: routing, middleware, and the
// handlers behind each endpoint.
package rest

import (
	"net/http"

	"appprove-backend/application/commands/bus"
	cmdhandlers "appprove-backend/application/commands/handlers"
	querybus "appprove-backend/application/queries/bus"
	"appprove-backend/infrastructure/observability"
	"appprove-backend/interfaces/http/rest/handlers"
	"appprove-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	commandBus    *bus.CommandBus
	queryBus      *querybus.QueryBus
	orchestrator  *cmdhandlers.SubmitOfferOrchestrator
	authenticator *middleware.Authenticator
	collector     *observability.Collector
	siteURL       string
	corsOrigins   []string
	logger        *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	orchestrator *cmdhandlers.SubmitOfferOrchestrator,
	authenticator *middleware.Authenticator,
	collector *observability.Collector,
	siteURL string,
	corsOrigins []string,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus:    commandBus,
		queryBus:      queryBus,
		orchestrator:  orchestrator,
		authenticator: authenticator,
		collector:     collector,
		siteURL:       siteURL,
		corsOrigins:   corsOrigins,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.collector))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
		rt.collector.Registry(), promhttp.HandlerOpts{}))

	sitemapHandler := handlers.NewSitemapHandler(rt.queryBus, rt.siteURL, rt.logger)
	router.Get("/sitemap.xml", sitemapHandler.Serve)

	router.Route("/api/v1", func(r chi.Router) {
		offerHandler := handlers.NewOfferHandler(rt.commandBus, rt.queryBus, rt.collector, rt.logger)
		keywordHandler := handlers.NewKeywordHandler(rt.commandBus, rt.queryBus, rt.collector, rt.logger)

		// Public read side
		r.Get("/offers", offerHandler.ListOffers)
		r.Get("/offers/{offerID}", offerHandler.GetOffer)
		r.Get("/keywords", keywordHandler.ListKeywords)

		// Signed-in routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authenticator.Require)

			r.Post("/offers/{offerID}/participants", offerHandler.JoinOffer)
			r.Delete("/offers/{offerID}/participants", offerHandler.LeaveOffer)

			r.Post("/keywords", keywordHandler.RegisterKeyword)

			draftHandler := handlers.NewDraftHandler(rt.commandBus, rt.queryBus, rt.collector, rt.logger)
			r.Route("/drafts", func(r chi.Router) {
				r.Get("/", draftHandler.GetDraft)
				r.Put("/", draftHandler.SaveDraft)
				r.Delete("/", draftHandler.ClearDraft)

				submitHandler := handlers.NewSubmitHandler(rt.orchestrator, rt.queryBus, rt.collector, rt.logger)
				r.Post("/submit", submitHandler.Submit)
			})

			repositoryHandler := handlers.NewRepositoryHandler(rt.queryBus, rt.logger)
			r.Get("/repositories", repositoryHandler.ListRepositories)

			surveyHandler := handlers.NewSurveyHandler(rt.commandBus, rt.logger)
			r.Route("/survey", func(r chi.Router) {
				r.Get("/questions", surveyHandler.GetQuestions)
				r.Post("/responses", surveyHandler.SubmitResponse)
			})
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

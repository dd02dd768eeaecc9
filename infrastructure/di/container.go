// Package di wires the application together.
package di

import (
	"appprove-backend/application/commands/bus"
	cmdhandlers "appprove-backend/application/commands/handlers"
	"appprove-backend/application/ports"
	querybus "appprove-backend/application/queries/bus"
	"appprove-backend/infrastructure/config"
	"appprove-backend/infrastructure/observability"
	"appprove-backend/interfaces/http/rest/middleware"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Dynamic       *config.Watcher
	Logger        *zap.Logger
	DraftStore    ports.DraftStore
	OfferRepo     ports.OfferRepository
	Catalog       ports.KeywordCatalog
	EventBus      ports.EventBus
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	Orchestrator  *cmdhandlers.SubmitOfferOrchestrator
	Authenticator *middleware.Authenticator
	Collector     *observability.Collector
}

// Shutdown releases held resources.
func (c *Container) Shutdown() {
	if c.Dynamic != nil {
		c.Dynamic.Stop()
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
}

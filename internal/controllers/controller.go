// Package controllers implements the HTTP handlers.
package controllers

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/assistant"
	"github.com/pocketledger/backend/internal/config"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
	"github.com/pocketledger/backend/internal/reconcile"
	"github.com/pocketledger/backend/internal/report"
)

// Controller holds the dependencies of all handlers.
//
// Aggregator credentials live in memory only. After a restart the frontend
// has to run the link flow again, which is also what the sandbox
// aggregator requires.
type Controller struct {
	Settings config.Settings
	Client   provider.Client
	Session  assistant.Session

	mu          sync.Mutex
	credentials map[string]provider.Credential // by item ID
	cursors     map[string]string              // next sync cursor by item ID
}

// New creates a Controller.
func New(settings config.Settings, client provider.Client, session assistant.Session) *Controller {
	return &Controller{
		Settings:    settings,
		Client:      client,
		Session:     session,
		credentials: make(map[string]provider.Credential),
		cursors:     make(map[string]string),
	}
}

// source returns the active data source view, defaulting to demo when the
// configured value is unknown.
func (co *Controller) source() models.Source {
	source := models.Source(co.Settings.DataSource)
	if !source.Valid() {
		return models.SourceDemo
	}
	return source
}

func (co *Controller) reporter() *report.Reporter {
	return report.New(models.DB, co.source())
}

func (co *Controller) syncer() *reconcile.Syncer {
	return reconcile.New(models.DB, co.Client, co.source())
}

type URIID struct {
	ID uuid.UUID `uri:"id,parser=encoding.TextUnmarshaler" binding:"required"` // The ID of the resource
}

var errUnknownItem = errors.New("there is no connected bank for this item ID, run the link flow first")

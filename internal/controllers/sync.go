package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httperror"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/rs/zerolog/log"
)

// RegisterLinkRoutes registers the routes for the bank-linking flow with
// the RouterGroup that is passed.
func (co *Controller) RegisterLinkRoutes(r *gin.RouterGroup) {
	r.POST("/session", co.CreateLinkSession)
	r.POST("/exchange", co.ExchangePublicToken)
}

// RegisterSyncRoutes registers the routes for sync runs with
// the RouterGroup that is passed.
func (co *Controller) RegisterSyncRoutes(r *gin.RouterGroup) {
	r.POST("", co.Sync)
	r.DELETE("/:itemId", co.Disconnect)
}

type LinkSessionResponse struct {
	LinkToken string `json:"linkToken"`
}

// CreateLinkSession starts a bank-linking session with the aggregator and
// returns the token the frontend hands to the link UI.
func (co *Controller) CreateLinkSession(c *gin.Context) {
	linkToken, err := co.Client.CreateLinkSession(c.Request.Context())
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, LinkSessionResponse{LinkToken: linkToken})
}

type ExchangeRequest struct {
	PublicToken string `json:"publicToken" binding:"required"`
}

type SyncResponse struct {
	ItemID       string `json:"itemId"`
	Accounts     int    `json:"accounts"`
	Transactions int    `json:"transactions"`
}

// ExchangePublicToken finishes the link flow: it exchanges the public
// token for an access credential, keeps the credential for later sync runs
// and runs the first full sync immediately.
func (co *Controller) ExchangePublicToken(c *gin.Context) {
	var request ExchangeRequest
	if err := httputil.BindData(c, &request); err != nil {
		httperror.New(c, http.StatusBadRequest, err.Error())
		return
	}

	credential, err := co.Client.ExchangePublicToken(c.Request.Context(), request.PublicToken)
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	co.mu.Lock()
	co.credentials[credential.ItemID] = credential
	co.mu.Unlock()

	result, err := co.syncer().FullSync(c.Request.Context(), credential, "")
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	co.mu.Lock()
	co.cursors[credential.ItemID] = result.NextCursor
	co.mu.Unlock()

	log.Info().Str("item_id", credential.ItemID).Msg("bank connected")

	c.JSON(http.StatusCreated, SyncResponse{
		ItemID:       credential.ItemID,
		Accounts:     result.Accounts,
		Transactions: result.Transactions,
	})
}

type SyncRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// Sync runs an incremental sync for a connected bank, continuing at the
// cursor of the previous run.
func (co *Controller) Sync(c *gin.Context) {
	var request SyncRequest
	if err := httputil.BindData(c, &request); err != nil {
		httperror.New(c, http.StatusBadRequest, err.Error())
		return
	}

	co.mu.Lock()
	credential, ok := co.credentials[request.ItemID]
	cursor := co.cursors[request.ItemID]
	co.mu.Unlock()

	if !ok {
		httperror.New(c, http.StatusNotFound, errUnknownItem.Error())
		return
	}

	result, err := co.syncer().FullSync(c.Request.Context(), credential, cursor)
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	co.mu.Lock()
	co.cursors[request.ItemID] = result.NextCursor
	co.mu.Unlock()

	c.JSON(http.StatusOK, SyncResponse{
		ItemID:       request.ItemID,
		Accounts:     result.Accounts,
		Transactions: result.Transactions,
	})
}

// Disconnect hides all accounts of a connected bank and forgets its
// credential.
func (co *Controller) Disconnect(c *gin.Context) {
	itemID := c.Param("itemId")
	if itemID == "" {
		httperror.New(c, http.StatusBadRequest, "the itemId parameter must be set")
		return
	}

	if err := co.syncer().Disconnect(c.Request.Context(), itemID); err != nil {
		httperror.Handler(c, err)
		return
	}

	co.mu.Lock()
	delete(co.credentials, itemID)
	delete(co.cursors, itemID)
	co.mu.Unlock()

	c.JSON(http.StatusNoContent, nil)
}

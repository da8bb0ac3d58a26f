package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httperror"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func (co *Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	r.GET("", co.GetAccounts)
	r.GET("/:id", co.GetAccount)
	r.PATCH("/:id", co.UpdateAccount)
	r.DELETE("/:id", co.HideAccount)
}

// GetAccounts returns the accounts visible in the active data source,
// sorted by name. Hidden accounts are included only with ?hidden=true.
func (co *Controller) GetAccounts(c *gin.Context) {
	var filter struct {
		Hidden bool `form:"hidden"`
	}
	if err := c.Bind(&filter); err != nil {
		httperror.InvalidQueryString(c)
		return
	}

	q := co.source().Accounts(models.DB).Order("name ASC")
	if !filter.Hidden {
		q = q.Where("hidden = ?", false)
	}

	// When there are no resources, we want an empty list, not null
	accounts := make([]models.Account, 0)
	if err := q.Find(&accounts).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

func (co *Controller) GetAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httperror.InvalidUUID(c)
		return
	}

	var account models.Account
	if err := models.DB.First(&account, uri.ID).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// AccountEditable are the fields of an account the user may change.
// Balance and sync metadata are owned by the sync.
type AccountEditable struct {
	Name        *string             `json:"name"`
	Institution *string             `json:"institution"`
	Type        *models.AccountType `json:"type"`
	Hidden      *bool               `json:"hidden"`
}

func (co *Controller) UpdateAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httperror.InvalidUUID(c)
		return
	}

	var account models.Account
	if err := models.DB.First(&account, uri.ID).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	var data AccountEditable
	if err := httputil.BindData(c, &data); err != nil {
		httperror.New(c, http.StatusBadRequest, err.Error())
		return
	}

	update := map[string]any{}
	if data.Name != nil {
		update["name"] = *data.Name
	}
	if data.Institution != nil {
		update["institution"] = *data.Institution
	}
	if data.Type != nil {
		update["type"] = *data.Type
	}
	if data.Hidden != nil {
		update["hidden"] = *data.Hidden
	}

	if err := models.DB.Model(&account).Updates(update).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// HideAccount hides the account instead of deleting it. Synced records are
// never physically removed, so reconnecting the same bank stays idempotent.
func (co *Controller) HideAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httperror.InvalidUUID(c)
		return
	}

	var account models.Account
	if err := models.DB.First(&account, uri.ID).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	if err := models.DB.Model(&account).Update("hidden", true).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

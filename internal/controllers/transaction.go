package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httperror"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/ryanuber/go-glob"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co *Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.GET("", co.GetTransactions)
	r.GET("/:id", co.GetTransaction)
	r.PATCH("/:id", co.UpdateTransaction)
}

// TransactionQueryFilter are the supported query string filters for the
// transaction list.
type TransactionQueryFilter struct {
	Month    string `form:"month"`    // YYYY-MM
	Category string `form:"category"` //
	Account  string `form:"account"`  // Account ID
	Merchant string `form:"merchant"` // Supports globbing, e.g. "*Coffee*"
	Limit    int    `form:"limit"`
}

// GetTransactions returns the transactions visible in the active data
// source, newest first, with optional filters.
func (co *Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		httperror.InvalidQueryString(c)
		return
	}

	q := co.source().Transactions(models.DB).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC")

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			httperror.InvalidMonth(c)
			return
		}
		period := month.Period()
		q = q.Where("transactions.date >= ?", period.Start).Where("transactions.date < ?", period.End)
	}

	if filter.Category != "" {
		category := models.Category(filter.Category)
		if !category.Valid() {
			httperror.New(c, http.StatusBadRequest, "The specified category is invalid")
			return
		}
		q = q.Where("category = ?", category)
	}

	if filter.Account != "" {
		id, err := httputil.UUIDFromString(filter.Account)
		if err != nil {
			httperror.InvalidUUID(c)
			return
		}
		q = q.Where("account_id = ?", id)
	}

	// The merchant glob runs after the query, so with a merchant filter
	// the limit has to be applied after globbing, not in SQL
	if filter.Limit > 0 && filter.Merchant == "" {
		q = q.Limit(filter.Limit)
	}

	transactions := make([]models.Transaction, 0)
	if err := q.Find(&transactions).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	// Merchant globbing cannot be pushed into sqlite, filter here
	if filter.Merchant != "" {
		matched := make([]models.Transaction, 0, len(transactions))
		for _, transaction := range transactions {
			if glob.Glob(filter.Merchant, transaction.Merchant) {
				matched = append(matched, transaction)
			}
		}
		transactions = matched

		if filter.Limit > 0 && len(transactions) > filter.Limit {
			transactions = transactions[:filter.Limit]
		}
	}

	c.JSON(http.StatusOK, transactions)
}

func (co *Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httperror.InvalidUUID(c)
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, uri.ID).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// TransactionEditable are the fields of a transaction the user may change.
// Everything else is owned by the sync.
type TransactionEditable struct {
	Category *models.Category `json:"category"`
	Note     *string          `json:"note"`
}

// UpdateTransaction applies a user edit. Edited fields are protected from
// later syncs, which only ever touch amount, merchant, pending and date.
func (co *Controller) UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httperror.InvalidUUID(c)
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, uri.ID).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	var data TransactionEditable
	if err := httputil.BindData(c, &data); err != nil {
		httperror.New(c, http.StatusBadRequest, err.Error())
		return
	}

	update := map[string]any{}
	if data.Category != nil {
		if !data.Category.Valid() {
			httperror.New(c, http.StatusBadRequest, "The specified category is invalid")
			return
		}
		update["category"] = *data.Category
	}
	if data.Note != nil {
		update["note"] = *data.Note
	}

	if err := models.DB.Model(&transaction).Updates(update).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

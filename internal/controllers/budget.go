package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httperror"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterBudgetRoutes registers the routes for budget categories with
// the RouterGroup that is passed.
func (co *Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.GET("", co.GetBudgets)
	r.POST("", co.CreateBudget)
	r.GET("/progress", co.GetBudgetProgress)
	r.GET("/:id", co.GetBudget)
	r.PATCH("/:id", co.UpdateBudget)
	r.DELETE("/:id", co.DeleteBudget)
}

func (co *Controller) GetBudgets(c *gin.Context) {
	budgets := make([]models.BudgetCategory, 0)
	if err := models.DB.Order("name ASC").Find(&budgets).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// BudgetEditable are the fields of a budget category the user may set.
type BudgetEditable struct {
	Name         string           `json:"name"`
	Icon         string           `json:"icon"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit"`
	Category     *models.Category `json:"category"`
}

func (co *Controller) CreateBudget(c *gin.Context) {
	var data BudgetEditable
	if err := httputil.BindData(c, &data); err != nil {
		httperror.New(c, http.StatusBadRequest, err.Error())
		return
	}

	budget := models.BudgetCategory{
		Name: data.Name,
		Icon: data.Icon,
	}
	if data.MonthlyLimit != nil {
		budget.MonthlyLimit = *data.MonthlyLimit
	}
	if data.Category != nil {
		if !data.Category.Valid() {
			httperror.New(c, http.StatusBadRequest, "The specified category is invalid")
			return
		}
		budget.Category = *data.Category
	}

	if err := models.DB.Create(&budget).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

func (co *Controller) GetBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httperror.InvalidUUID(c)
		return
	}

	var budget models.BudgetCategory
	if err := models.DB.First(&budget, uri.ID).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

func (co *Controller) UpdateBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httperror.InvalidUUID(c)
		return
	}

	var budget models.BudgetCategory
	if err := models.DB.First(&budget, uri.ID).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	var data BudgetEditable
	if err := httputil.BindData(c, &data); err != nil {
		httperror.New(c, http.StatusBadRequest, err.Error())
		return
	}

	update := map[string]any{}
	if data.Name != "" {
		update["name"] = data.Name
	}
	if data.Icon != "" {
		update["icon"] = data.Icon
	}
	if data.MonthlyLimit != nil {
		update["monthly_limit"] = *data.MonthlyLimit
	}
	if data.Category != nil {
		if !data.Category.Valid() {
			httperror.New(c, http.StatusBadRequest, "The specified category is invalid")
			return
		}
		update["category"] = *data.Category
	}

	if err := models.DB.Model(&budget).Updates(update).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

func (co *Controller) DeleteBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httperror.InvalidUUID(c)
		return
	}

	var budget models.BudgetCategory
	if err := models.DB.First(&budget, uri.ID).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	if err := models.DB.Delete(&budget).Error; err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetBudgetProgress returns the live progress of all budget categories for
// the month given in the query string, defaulting to the current month.
func (co *Controller) GetBudgetProgress(c *gin.Context) {
	period, err := monthPeriod(c.Query("month"), time.Now().In(time.UTC))
	if err != nil {
		httperror.InvalidMonth(c)
		return
	}

	summary, err := co.reporter().BudgetProgress(period)
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/fixture"
	"github.com/pocketledger/backend/internal/httperror"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterDemoRoutes registers the routes for the demo dataset with
// the RouterGroup that is passed.
func (co *Controller) RegisterDemoRoutes(r *gin.RouterGroup) {
	r.POST("/seed", co.SeedDemo)
}

// SeedDemo seeds the demo dataset. Seeding twice is a no-op.
func (co *Controller) SeedDemo(c *gin.Context) {
	if err := fixture.Seed(models.DB); err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

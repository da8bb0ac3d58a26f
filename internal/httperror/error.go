package httperror

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type HTTPError struct {
	Error string `json:"error" example:"There is no account matching your query"`
}

// New writes the HTTP error with the corresponding status code.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
		msg = fmt.Sprintf("%+v", msg)
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.JSON(status, HTTPError{
		Error: msg,
	})
}

func InvalidUUID(c *gin.Context) {
	New(c, http.StatusBadRequest, "The specified resource ID is not a valid UUID")
}

func InvalidQueryString(c *gin.Context) {
	New(c, http.StatusBadRequest, "The query string contains unparseable data. Please check the values")
}

func InvalidMonth(c *gin.Context) {
	New(c, http.StatusBadRequest, "Could not parse the specified month, did you use YYYY-MM format?")
}

// Handler maps an error to the matching HTTP response.
func Handler(c *gin.Context, err error) {
	switch {
	// No record found => 404
	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		New(c, http.StatusNotFound, err.Error())

	// Constraint violations the client can fix
	case errors.Is(err, models.ErrAccountExternalIDNotUnique),
		errors.Is(err, models.ErrTransactionExternalIDNotUnique),
		errors.Is(err, models.ErrBudgetCategoryNameNotUnique),
		errors.Is(err, models.ErrBudgetLimitNegative):
		New(c, http.StatusBadRequest, err.Error())

	// Aggregator credentials are not set up
	case errors.Is(err, provider.ErrNotConfigured):
		New(c, http.StatusServiceUnavailable, err.Error())

	// The aggregator rejected the request or sent something unreadable
	case errors.Is(err, provider.ErrUpstream), errors.Is(err, provider.ErrDecode):
		New(c, http.StatusBadGateway, err.Error())

	// End of file reached when reading the request body
	case errors.Is(err, io.EOF):
		New(c, http.StatusBadRequest, "The request body must not be empty")

	default:
		// Time could not be parsed. The error string tells the problem
		// very well
		var timeErr *time.ParseError
		if errors.As(err, &timeErr) {
			New(c, http.StatusBadRequest, err.Error())
			return
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		New(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred on the server during your request, please contact your server administrator. The request id is '%v'", requestid.Get(c)))
	}
}

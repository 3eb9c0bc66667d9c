package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kol-marketplace/internal/domain"
)

// fail maps service errors onto HTTP responses. Domain-rule failures keep
// their message; anything unrecognized becomes a generic 500 and the raw
// error stays in the server log.
func fail(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case isDomainRuleError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func isDomainRuleError(err error) bool {
	var minOrder *domain.MinOrderValueError
	return errors.Is(err, domain.ErrMissingIdentifiers) ||
		errors.Is(err, domain.ErrCouponInvalid) ||
		errors.Is(err, domain.ErrCouponExpired) ||
		errors.Is(err, domain.ErrCouponUsed) ||
		errors.Is(err, domain.ErrUserNotActive) ||
		errors.Is(err, domain.ErrInvalidOption) ||
		errors.As(err, &minOrder)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

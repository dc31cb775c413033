package apperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hardware-pos/pkg/logger"
)

// Respond translates a usecase error into the API error contract:
// validation failures and unique violations become 400 with a field-tagged
// message, unknown ids become 404, everything else is logged and returned
// as a generic 500 so internals never leak.
func Respond(c *gin.Context, log logger.ZapLogger, err error) {
	switch {
	case IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case IsUniqueViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate value for a unique field"})
	default:
		log.Error("internal error", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

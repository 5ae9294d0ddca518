package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arjun-dev21/teamforge/internal/apperr"
)

// writeError renders a domain error as its HTTP status with the
// explanation/message shape the clients consume. Anything that isn't a
// domain error is the generic fallback: logged with full detail, surfaced
// as a bare 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	if ae, ok := apperr.As(err); ok {
		payload := gin.H{
			"explanation": ae.Explanation,
			"message":     ae.Message,
		}
		if len(ae.Fields) > 0 {
			payload["errors"] = ae.Fields
		}
		c.JSON(ae.StatusCode, payload)
		return
	}

	logger.Error("unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "github.com/freshmart/storefront/pkg/errors"
	"github.com/freshmart/storefront/pkg/response"
)

var errStoreDegraded = apperrors.New("SERVICE_UNAVAILABLE", "Service degraded", http.StatusServiceUnavailable)

// Health returns a simple status payload useful for readiness checks.
// When a database handle is supplied, its connectivity is pinged too.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(requestContext(c))
			}
			if err != nil {
				response.Error(c, errStoreDegraded.WithInternal(err))
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}

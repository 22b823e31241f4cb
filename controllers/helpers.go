package controllers

import (
	"net/http"
	"strconv"
	"time"

	"kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter, writing a 400
// response and returning false when it is malformed.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// parseTimeQuery reads an optional RFC 3339 timestamp query parameter.
// A missing parameter yields (nil, true).
func parseTimeQuery(ctx *gin.Context, name string) (*time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter, want RFC 3339"})
		return nil, false
	}
	utc := t.UTC()
	return &utc, true
}

// renderServiceError writes the service error with its HTTP status and
// machine-readable code.
func renderServiceError(ctx *gin.Context, svcErr *services.ServiceError) {
	ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
}

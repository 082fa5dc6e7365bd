package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/motio/analysis-api/internal/lib/fault"
)

// ErrorResponse is the JSON body returned for any failed request. Detail
// carries the raw underlying message as a diagnostic.
type ErrorResponse struct {
	Error  fault.Kind `json:"error"`
	Detail string     `json:"detail"`
}

func statusFor(kind fault.Kind) int {
	switch kind {
	case fault.Validation:
		return http.StatusBadRequest
	case fault.UpstreamTimeout:
		return http.StatusGatewayTimeout
	case fault.UpstreamResponse, fault.Generation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	kind := fault.KindOf(err)
	c.JSON(statusFor(kind), ErrorResponse{Error: kind, Detail: err.Error()})
}

func respondValidationError(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: fault.Validation, Detail: detail})
}

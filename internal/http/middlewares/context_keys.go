package middlewares

import "github.com/gin-gonic/gin"

// gin context keys set by the middlewares in this package
const (
	CtxRequestID = "request_id"
)

// RequestIDFrom returns the id RequestID stored on the context, or "".
func RequestIDFrom(ctx *gin.Context) string {
	return ctx.GetString(CtxRequestID)
}

package handlers

import (
	"log/slog"

	"github.com/geocoder89/usersvc/internal/apperr"
	"github.com/geocoder89/usersvc/internal/http/middlewares"
	"github.com/geocoder89/usersvc/internal/observability"
	"github.com/gin-gonic/gin"
)

// HandlerFunc is a gin handler that reports failure by returning it.
type HandlerFunc func(ctx *gin.Context) error

// ErrorResponder is the one place failures are turned into responses.
type ErrorResponder struct {
	log  *slog.Logger
	prom *observability.Prom
}

func NewErrorResponder(log *slog.Logger, prom *observability.Prom) *ErrorResponder {
	return &ErrorResponder{log: log, prom: prom}
}

// Handle adapts fn to gin; a returned error is answered by RespondError.
func (r *ErrorResponder) Handle(fn HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := fn(ctx); err != nil {
			r.RespondError(ctx, err)
		}
	}
}

func (r *ErrorResponder) RespondError(ctx *gin.Context, err error) {
	appErr := apperr.From(err)

	r.log.ErrorContext(ctx.Request.Context(), "request failed",
		"kind", string(appErr.Kind),
		"err", appErr.Error(),
		"request_id", middlewares.RequestIDFrom(ctx),
	)

	if r.prom != nil {
		r.prom.IncError(string(appErr.Kind))
	}

	ctx.String(appErr.StatusCode(), appErr.Message())
}

package middlewares

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

const (
	directionRequest  = "request"
	directionResponse = "response"
)

// BodyReadError reports a body that could not be drained.
type BodyReadError struct {
	Direction string
	Err       error
}

func (e *BodyReadError) Error() string {
	return fmt.Sprintf("failed to read %s body: %v", e.Direction, e.Err)
}

func (e *BodyReadError) Unwrap() error {
	return e.Err
}

// BodyLogger logs the request and response bodies of every exchange and
// forwards both unchanged.
//
// The request body is read in full and logged before the rest of the chain
// runs; the response is held in memory until the chain returns, logged, and
// only then written to the client. Bodies that are not valid UTF-8 are
// forwarded without being logged. A body that cannot be read fails the
// exchange with 400 and nothing is forwarded.
func BodyLogger(log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		reqBody, err := bufferAndLog(ctx, log, directionRequest, ctx.Request.Body)
		if err != nil {
			abortBodyRead(ctx, log, err)
			return
		}

		if ctx.Request.Body != nil {
			ctx.Request.Body.Close()
		}
		ctx.Request.Body = io.NopCloser(bytes.NewReader(reqBody))
		ctx.Request.ContentLength = int64(len(reqBody))

		original := ctx.Writer
		buffered := newBufferedWriter(original)
		ctx.Writer = buffered

		// a panicking handler must leave the real writer behind for gin.Recovery
		defer func() { ctx.Writer = original }()

		ctx.Next()

		ctx.Writer = original

		resBody, err := bufferAndLog(ctx, log, directionResponse, &buffered.body)
		if err != nil {
			abortBodyRead(ctx, log, err)
			return
		}

		if err := buffered.flush(resBody); err != nil {
			log.WarnContext(ctx.Request.Context(), "response write failed",
				"err", err,
				"request_id", RequestIDFrom(ctx),
			)
		}
	}
}

func bufferAndLog(ctx *gin.Context, log *slog.Logger, direction string, body io.Reader) ([]byte, error) {
	var b []byte

	if body != nil {
		var err error
		b, err = io.ReadAll(body)
		if err != nil {
			return nil, &BodyReadError{Direction: direction, Err: err}
		}
	}

	if utf8.Valid(b) {
		log.InfoContext(ctx.Request.Context(), direction+" body",
			"direction", direction,
			"body", string(b),
			"request_id", RequestIDFrom(ctx),
		)
	}

	return b, nil
}

func abortBodyRead(ctx *gin.Context, log *slog.Logger, err error) {
	log.WarnContext(ctx.Request.Context(), "body read failed",
		"err", err,
		"request_id", RequestIDFrom(ctx),
	)

	ctx.Writer.Header().Del("Content-Type")
	ctx.String(http.StatusBadRequest, err.Error())
	ctx.Abort()
}

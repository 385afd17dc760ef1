package middlewares

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bufferedWriter holds everything a handler writes so the body can be
// inspected before any byte reaches the client. Headers go straight to the
// underlying header map; status and body are replayed by flush.
type bufferedWriter struct {
	gin.ResponseWriter
	body          bytes.Buffer
	status        int
	headerWritten bool
}

func newBufferedWriter(w gin.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{
		ResponseWriter: w,
		status:         w.Status(),
	}
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.headerWritten {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.headerWritten = true
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.headerWritten = true
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.headerWritten = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	if !w.headerWritten {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.headerWritten
}

// Flush is a no-op: nothing leaves the buffer before the chain returns.
func (w *bufferedWriter) Flush() {}

func (w *bufferedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// flush replays the captured status and the given body on the real writer.
func (w *bufferedWriter) flush(body []byte) error {
	w.ResponseWriter.WriteHeader(w.status)

	if len(body) > 0 {
		_, err := w.ResponseWriter.Write(body)
		return err
	}

	if w.headerWritten {
		w.ResponseWriter.WriteHeaderNow()
	}
	return nil
}

package health

import (
	"io"
	"net/http"
)

const body = `{"status":"ok"}`

func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	// The status line is already sent; a failed write has no one to report to.
	_, _ = io.WriteString(w, body)
}

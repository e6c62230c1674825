// Package handlers provides the HTTP handlers served by the greeter routes.
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jamesprial/greeter/internal/transport/transportcore"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// writeJSON encodes v and writes it with the given status.
// Encoding happens before any header is written, so a failure still
// produces a clean 500. HTML characters are written as-is.
func writeJSON(w http.ResponseWriter, responder transportcore.ErrorResponder, status int, v any) {
	data, err := encodeJSON(v)
	if err != nil {
		responder.InternalError(w, err)
		return
	}

	w.Header().Set(greeter.HeaderContentType, greeter.ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

// encodeJSON is json.Marshal without HTML escaping.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

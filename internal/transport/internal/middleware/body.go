package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"unicode/utf8"

	"github.com/jamesprial/greeter/internal/transport/transportcore"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// NewBodyDecoder creates a guard that decodes the request body as a
// GreetingBody and stores it in the request context.
//
// Bodies larger than maxBytes, malformed JSON and bodies without a string
// "data" field get 400 Bad Request; the next handler is not called.
// A Content-Type other than application/json is logged but not rejected.
// If logger is nil, it uses the default slog logger.
func NewBodyDecoder(responder transportcore.ErrorResponder, maxBytes int64, logger *slog.Logger) transportcore.Middleware {
	if responder == nil {
		panic("responder cannot be nil")
	}
	if maxBytes <= 0 {
		panic("maxBytes must be positive")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get(greeter.HeaderContentType); ct != "" {
				if mediaType, _, err := mime.ParseMediaType(ct); err != nil || mediaType != "application/json" {
					logger.Warn("unexpected content type",
						"content_type", ct,
						"path", r.URL.Path,
						"request_id", transportcore.RequestIDFromContext(r.Context()),
					)
				}
			}

			data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					responder.BadRequest(w, &transportcore.BodyDecodeError{
						Reason: fmt.Sprintf("body exceeds %d bytes", maxErr.Limit),
					})
					return
				}
				responder.BadRequest(w, &transportcore.BodyDecodeError{Reason: "read failed: " + err.Error()})
				return
			}

			body, err := decodeGreetingBody(data)
			if err != nil {
				responder.BadRequest(w, err)
				return
			}

			ctx := transportcore.ContextWithBody(r.Context(), body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// decodeGreetingBody decodes exactly one JSON object with a string "data"
// field. Unknown fields are ignored. Bodies that are not valid UTF-8 are
// rejected rather than decoded with replacement characters.
func decodeGreetingBody(data []byte) (*greeter.GreetingBody, error) {
	if bad := invalidUTF8Offset(data); bad >= 0 {
		return nil, decodeErrorAt(data, int64(bad)+1, "invalid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, classifyDecodeError(data, err)
	}
	end := dec.InputOffset()

	if fields == nil {
		return nil, decodeErrorAt(data, end, "invalid type: expected object")
	}

	raw, ok := fields["data"]
	if !ok {
		return nil, decodeErrorAt(data, end, "missing field `data`")
	}

	var value string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &value) != nil {
		return nil, decodeErrorAt(data, end, `invalid type for field "data"`)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, decodeErrorAt(data, end+leadingSpace(data[end:])+1, "trailing data after object")
	}

	return &greeter.GreetingBody{Data: value}, nil
}

// classifyDecodeError converts encoding/json errors into a BodyDecodeError.
func classifyDecodeError(data []byte, err error) *transportcore.BodyDecodeError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syntaxErr):
		return decodeErrorAt(data, syntaxErr.Offset, "invalid syntax: "+syntaxErr.Error())
	case errors.As(err, &typeErr):
		return decodeErrorAt(data, typeErr.Offset, "invalid type: expected object")
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return decodeErrorAt(data, int64(len(data)), "unexpected end of input")
	default:
		return decodeErrorAt(data, int64(len(data)), err.Error())
	}
}

// decodeErrorAt builds a BodyDecodeError positioned after offset bytes of data.
func decodeErrorAt(data []byte, offset int64, reason string) *transportcore.BodyDecodeError {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}

	prefix := data[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1
	column := len(prefix) - (bytes.LastIndexByte(prefix, '\n') + 1)

	return &transportcore.BodyDecodeError{Reason: reason, Line: line, Column: column}
}

// invalidUTF8Offset returns the index of the first byte of data that does
// not start a valid UTF-8 sequence, or -1 if data is valid.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// leadingSpace counts the JSON whitespace bytes at the start of b.
func leadingSpace(b []byte) int64 {
	n := 0
	for n < len(b) {
		switch b[n] {
		case ' ', '\t', '\r', '\n':
			n++
		default:
			return int64(n)
		}
	}
	return int64(n)
}

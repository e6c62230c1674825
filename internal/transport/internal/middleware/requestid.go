package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jamesprial/greeter/internal/transport/transportcore"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// maxRequestIDLen bounds client-supplied request IDs.
const maxRequestIDLen = 128

// NewRequestIDMiddleware creates middleware that tags every request with a
// correlation ID. A well-formed X-Request-ID from the client is kept;
// otherwise a random UUID is generated. The ID is echoed in the response
// header and stored in the request context.
func NewRequestIDMiddleware() transportcore.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(greeter.HeaderRequestID)
			if !validRequestID(id) {
				id = uuid.NewString()
			}

			w.Header().Set(greeter.HeaderRequestID, id)
			ctx := transportcore.ContextWithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validRequestID reports whether id is non-empty, short, and printable ASCII.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

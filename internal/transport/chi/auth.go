package chi

import (
	"net/http"
	"strings"
)

// exemptPaths bypass authentication so probes and scrapers work unkeyed.
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware validates Bearer tokens against the configured key set.
// An empty key set disables authentication entirely.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, errMsg := bearerToken(r)
			if errMsg != "" {
				writeError(w, http.StatusUnauthorized, codeBadRequest, errMsg)
				return
			}
			if _, ok := validKeys[token]; !ok {
				writeError(w, http.StatusUnauthorized, codeBadRequest, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header. Returns a
// non-empty message describing what was wrong when extraction fails.
func bearerToken(r *http.Request) (token, errMsg string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", "missing authorization header"
	}

	const scheme = "Bearer "
	if !strings.HasPrefix(auth, scheme) {
		return "", "authorization header must use Bearer scheme"
	}
	return auth[len(scheme):], ""
}

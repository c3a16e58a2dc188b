package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser calls from origins; "*" allows any. Preflight
// requests get the CORS headers and are finished with 204.
func CORS(origins []string) func(http.Handler) http.Handler {
	allow := cors.Handler(cors.Options{
		AllowedOrigins:     origins,
		AllowedMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:             300,
		OptionsPassthrough: true,
	})

	return func(next http.Handler) http.Handler {
		return allow(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Finish preflight quickly
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

package middleware

import (
	"net/http"

	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a route group to tokens carrying the admin role.
// Approvals and master-data mutations go through here.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Role(r.Context()) != "admin" {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

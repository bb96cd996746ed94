package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web routes on the provided mux. Pages
// are served at / and the login round trip under /auth/*. Static assets
// are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Page routes.
	mux.HandleFunc("GET /{$}", h.Landing)
	mux.HandleFunc("GET /dashboard", h.Dashboard)
	mux.HandleFunc("GET /about", h.About)

	// Login round trip.
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/signout", h.Signout)
}

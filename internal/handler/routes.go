package handler

import (
	"net/http"

	"github.com/Dan9191/rental-analyzer/internal/config"
	"github.com/Dan9191/rental-analyzer/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires public and protected routes
func NewRouter(h *Handler, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logger(h.log))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/defaults", h.Defaults).Methods(http.MethodGet)

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/projections", h.Project).Methods(http.MethodPost)
	authRouter.HandleFunc("/reference-rate", h.ReferenceRate).Methods(http.MethodGet)
	authRouter.HandleFunc("/reports/email", h.EmailReport).Methods(http.MethodPost)

	return r
}

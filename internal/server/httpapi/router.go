// Package httpapi is the relay's REST surface: a chi router with request id,
// logging and recovery middleware, bearer authentication and an admin group.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/gzapadmin/internal/common"
	"github.com/dmitrijs2005/gzapadmin/internal/logging"
)

// NewRouter wires every relay route onto a fresh mux.
func NewRouter(h *Handler, auth Authenticator, logger logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(Recovery(logger))
	r.Use(RequestID)
	r.Use(Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", common.AuthorizationHeader, "Content-Type", common.RequestIDHeader},
		ExposedHeaders: []string{common.RequestIDHeader},
		MaxAge:         300,
	}))

	// public
	r.Get("/", h.Root)
	r.Post("/auth/login", h.Login)
	r.Post("/users/reset-password", h.ResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(Auth(auth))

		r.Get("/users/me", h.Me)
		r.Put("/users/", h.UpdateProfile)

		r.Get("/connections", h.Connection)
		r.Get("/whatsapp/generate-qr", h.GenerateQR)
		r.Post("/whatsapp/logout", h.LogoutSession)

		r.Get("/whatsapp-message-log", h.MessageLog)
		r.Post("/whatsapp-message-log/resend", h.ResendFailed)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly)

			r.Get("/companies/all", h.Companies)
			r.Post("/companies", h.CreateCompany)
			r.Put("/companies/{id}", h.UpdateCompany)

			r.Get("/users/all", h.Users)
			r.Post("/users", h.CreateUser)
			r.Put("/users/admin", h.UpdateUser)
			r.Patch("/users/{id}", h.SetUserActive)
		})
	})

	return r
}

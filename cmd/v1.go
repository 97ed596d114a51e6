package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/tcp_snm/leetlab/middleware"
)

func NewV1Router() *chi.Mux {
	v1 := chi.NewRouter()

	v1.Get("/healthz", apiConfig.HandlerReadiness)

	// auth layer
	v1.Post("/auth/register", apiConfig.HandlerRegister)
	v1.Get("/auth/verify/{token}", apiConfig.HandlerVerifyEmail)
	v1.Post("/auth/login", apiConfig.HandlerLogin)
	v1.Post("/auth/logout", apiConfig.HandlerLogout)
	v1.Get("/auth/check", middleware.JWTMiddleware(apiConfig.HandlerGetMe))
	v1.Post("/auth/reset-password/mail", apiConfig.HandlerResetPasswordSendMail)
	v1.Post("/auth/reset-password", apiConfig.HandlerResetPassword)

	// problems layer
	v1.Get("/problems", middleware.JWTMiddleware(apiConfig.HandlerGetProblems))
	v1.Get("/problems/{id}", middleware.JWTMiddleware(apiConfig.HandlerGetProblemById))
	v1.Post("/problems", middleware.JWTMiddleware(apiConfig.HandlerAddProblem))
	v1.Put("/problems/{id}", middleware.JWTMiddleware(apiConfig.HandlerUpdateProblem))
	v1.Delete("/problems/{id}", middleware.JWTMiddleware(apiConfig.HandlerDeleteProblem))

	return v1
}

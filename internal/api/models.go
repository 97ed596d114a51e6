package api

import (
	"github.com/tcp_snm/leetlab/internal/service/auth_service"
	"github.com/tcp_snm/leetlab/internal/service/problem_service"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
)

type Api struct {
	AuthServiceConfig    *auth_service.AuthService
	UserServiceConfig    *user_service.UserService
	ProblemServiceConfig *problem_service.ProblemService
}

type errorResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

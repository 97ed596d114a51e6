package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/service/auth_service"
	"github.com/tcp_snm/leetlab/middleware"
)

func (a *Api) HandlerRegister(w http.ResponseWriter, r *http.Request) {
	var request auth_service.UserRegistration
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	user, err := a.AuthServiceConfig.Register(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusCreated, user, "user created, but error in preparing response")
}

func (a *Api) HandlerVerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := a.AuthServiceConfig.VerifyEmail(r.Context(), token); err != nil {
		handlerError(err, w)
		return
	}

	respondWithMessage(w, http.StatusOK, "email verified successfully")
}

func (a *Api) HandlerLogin(w http.ResponseWriter, r *http.Request) {
	var request auth_service.UserLoginRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	// validate the user and gen a jwt token
	user, jwtToken, tokenExpiry, err := a.AuthServiceConfig.Login(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.KeyJwtSessionCookieName,
		Value:    jwtToken,
		Expires:  tokenExpiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	log.WithField("user_id", user.ID).Info("logged in")

	respondWithValue(w, http.StatusOK, user, "logged in, but error in preparing response")
}

func (a *Api) HandlerLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.KeyJwtSessionCookieName, // must match login cookie name
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	respondWithMessage(w, http.StatusOK, "logged out successfully")
}

func (a *Api) HandlerGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := a.UserServiceConfig.GetMe(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, user, "error in preparing response")
}

func (a *Api) HandlerResetPasswordSendMail(w http.ResponseWriter, r *http.Request) {
	var request auth_service.ResetPasswordMailRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	if err := a.AuthServiceConfig.ResetPasswordSendMail(r.Context(), request); err != nil {
		handlerError(err, w)
		return
	}

	respondWithMessage(w, http.StatusAccepted, "password reset mail sent")
}

func (a *Api) HandlerResetPassword(w http.ResponseWriter, r *http.Request) {
	var request auth_service.ResetPasswordRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	if err := a.AuthServiceConfig.ResetPassword(r.Context(), request); err != nil {
		handlerError(err, w)
		return
	}

	respondWithMessage(w, http.StatusOK, "password reset successful")
}

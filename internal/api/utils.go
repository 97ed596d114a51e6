package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

const maxRequestBodyBytes = 8 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func decodeJsonBody(body io.ReadCloser, v any) error {
	defer body.Close()
	decoder := json.NewDecoder(io.LimitReader(body, maxRequestBodyBytes))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w, invalid request payload, %w", leetlab_errors.ErrInvalidRequest, err)
	}
	return nil
}

func respondWithJson(w http.ResponseWriter, status int, response []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		log.Errorf("cannot write response, %v", err)
	}
}

// respondWithValue marshals v and writes it. fallback is sent instead when
// marshalling fails after the operation already succeeded.
func respondWithValue(w http.ResponseWriter, status int, v any, fallback string) {
	responseBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("cannot marshal %T, %v", v, err)
		writeError(w, http.StatusInternalServerError, "internal", fallback)
		return
	}
	respondWithJson(w, status, responseBytes)
}

func respondWithMessage(w http.ResponseWriter, status int, message string) {
	respondWithValue(w, status, messageResponse{Success: true, Message: message}, message)
}

func writeError(w http.ResponseWriter, status int, reason string, message string) {
	responseBytes, err := json.Marshal(errorResponse{
		Reason:  reason,
		Message: message,
	})
	if err != nil {
		http.Error(w, message, status)
		return
	}
	respondWithJson(w, status, responseBytes)
}

type errorMapping struct {
	err    error
	status int
	reason string
	// internal errors are reported with their sentinel text only
	hideDetails bool
}

// first match wins, so more specific sentinels come first
var errorMappings = []errorMapping{
	{leetlab_errors.ErrUnAuthenticated, http.StatusUnauthorized, "unauthenticated", false},
	{leetlab_errors.ErrInvalidUserCredentials, http.StatusUnauthorized, "invalid_credentials", false},
	{leetlab_errors.ErrUnAuthorized, http.StatusForbidden, "forbidden", false},
	{leetlab_errors.ErrInvalidInput, http.StatusBadRequest, "invalid_input", false},
	{leetlab_errors.ErrInvalidRequest, http.StatusBadRequest, "invalid_request", false},
	{leetlab_errors.ErrVerificationTokenExpired, http.StatusBadRequest, "verification_token_expired", false},
	{leetlab_errors.ErrNotFound, http.StatusNotFound, "not_found", false},
	{leetlab_errors.ErrUserAlreadyExists, http.StatusConflict, "user_already_exists", false},
	{leetlab_errors.ErrEmailServiceStopped, http.StatusServiceUnavailable, "email_service_unavailable", true},
	{leetlab_errors.ErrPersistenceFailed, http.StatusInternalServerError, "persistence_failed", true},
}

var verificationStatus = map[leetlab_errors.Reason]int{
	leetlab_errors.ReasonUnsupportedLanguage:   http.StatusBadRequest,
	leetlab_errors.ReasonTestCaseFailed:        http.StatusBadRequest,
	leetlab_errors.ReasonLanguageTable:         http.StatusBadGateway,
	leetlab_errors.ReasonSubmissionFailed:      http.StatusBadGateway,
	leetlab_errors.ReasonInternalJudgeError:    http.StatusBadGateway,
	leetlab_errors.ReasonJudgeTimeout:          http.StatusGatewayTimeout,
	leetlab_errors.ReasonVerificationCancelled: http.StatusRequestTimeout,
}

func handlerError(err error, w http.ResponseWriter) {
	var vErr *leetlab_errors.VerificationError
	if errors.As(err, &vErr) {
		status, ok := verificationStatus[vErr.Reason]
		if !ok {
			status = http.StatusBadGateway
		}
		writeError(w, status, string(vErr.Reason), vErr.Message())
		return
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		message := err.Error()
		if m.hideDetails {
			message = m.err.Error()
		}
		writeError(w, m.status, m.reason, message)
		return
	}

	// errors are logged where they occur
	writeError(w, http.StatusInternalServerError, "internal", leetlab_errors.ErrInternal.Error())
}

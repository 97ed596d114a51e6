package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service/problem_service"
)

const (
	defaultPageSize = 20
)

func (a *Api) HandlerAddProblem(w http.ResponseWriter, r *http.Request) {
	var problem problem_service.Problem
	if err := decodeJsonBody(r.Body, &problem); err != nil {
		handlerError(err, w)
		return
	}

	created, err := a.ProblemServiceConfig.CreateProblem(r.Context(), problem)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusCreated, created, "problem created, but error in preparing response")
}

func (a *Api) HandlerGetProblemById(w http.ResponseWriter, r *http.Request) {
	id, err := problemIdFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	problem, err := a.ProblemServiceConfig.GetProblemById(r.Context(), id)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, problem, "error in preparing response")
}

func (a *Api) HandlerGetProblems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request := problem_service.GetProblemsRequest{
		PageNumber: 1,
		PageSize:   defaultPageSize,
	}

	if difficulty := query.Get("difficulty"); difficulty != "" {
		request.Difficulty = &difficulty
	}
	var err error
	if request.PageNumber, err = queryInt32(query.Get("page"), request.PageNumber); err != nil {
		handlerError(err, w)
		return
	}
	if request.PageSize, err = queryInt32(query.Get("page_size"), request.PageSize); err != nil {
		handlerError(err, w)
		return
	}

	problems, err := a.ProblemServiceConfig.GetProblemsByFilters(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, problems, "error in preparing response")
}

func (a *Api) HandlerUpdateProblem(w http.ResponseWriter, r *http.Request) {
	id, err := problemIdFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	var problem problem_service.Problem
	if err = decodeJsonBody(r.Body, &problem); err != nil {
		handlerError(err, w)
		return
	}

	updated, err := a.ProblemServiceConfig.UpdateProblem(r.Context(), id, problem)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, updated, "problem updated, but error in preparing response")
}

func (a *Api) HandlerDeleteProblem(w http.ResponseWriter, r *http.Request) {
	id, err := problemIdFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	if err = a.ProblemServiceConfig.DeleteProblem(r.Context(), id); err != nil {
		handlerError(err, w)
		return
	}

	respondWithMessage(w, http.StatusOK, "problem deleted")
}

func problemIdFromPath(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w, problem id must be a uuid", leetlab_errors.ErrInvalidRequest)
	}
	return id, nil
}

func queryInt32(raw string, fallback int32) (int32, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w, %q is not a valid number", leetlab_errors.ErrInvalidRequest, raw)
	}
	return int32(v), nil
}

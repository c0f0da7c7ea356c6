package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/tracing"
	"github.com/qhub/qhub_api/util/values"
)

func (api *API) AnswerRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/{answerID}/vote", Handler(api.VoteAnswer))
		r.Method(http.MethodPost, "/{answerID}/accept", Handler(api.AcceptAnswer))
		r.Method(http.MethodPost, "/{answerID}/flag", Handler(api.FlagAnswer))
	})

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin, api.RequireAdmin)
		r.Method(http.MethodDelete, "/{answerID}", Handler(api.DeleteAnswer))
	})

	return mux
}

func (api *API) PostAnswer(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	questionID := chi.URLParam(r, "questionID")
	if _, err := util.StringToUUID(questionID); err != nil {
		return respondWithError(err, "invalid question id", values.BadRequestBody, &tc)
	}

	var req model.CreateAnswerRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}
	username, err := util.GetUsernameFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get username from context", values.NotAuthorised, &tc)
	}

	answer, status, message, err := api.PostAnswerHelper(r.Context(), questionID, userID.String(), username, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       answer,
	}
}

func (api *API) ListAnswers(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	questionID := chi.URLParam(r, "questionID")
	if _, err := util.StringToUUID(questionID); err != nil {
		return respondWithError(err, "invalid question id", values.BadRequestBody, &tc)
	}

	answers, status, message, err := api.ListAnswersHelper(r.Context(), questionID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       answers,
	}
}

func (api *API) VoteAnswer(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	answerID := chi.URLParam(r, "answerID")
	if _, err := util.StringToUUID(answerID); err != nil {
		return respondWithError(err, "invalid answer id", values.BadRequestBody, &tc)
	}

	var req model.VoteRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	result, status, message, err := api.VoteAnswerHelper(r.Context(), answerID, userID.String(), req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       result,
	}
}

func (api *API) AcceptAnswer(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	answerID := chi.URLParam(r, "answerID")
	if _, err := util.StringToUUID(answerID); err != nil {
		return respondWithError(err, "invalid answer id", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	answer, status, message, err := api.AcceptAnswerHelper(r.Context(), answerID, userID.String())
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       answer,
	}
}

func (api *API) FlagAnswer(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	answerID := chi.URLParam(r, "answerID")
	if _, err := util.StringToUUID(answerID); err != nil {
		return respondWithError(err, "invalid answer id", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	flag, status, message, err := api.FlagContentHelper(r.Context(), model.FlagTargetAnswer, answerID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       flag,
	}
}

func (api *API) DeleteAnswer(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	answerID := chi.URLParam(r, "answerID")
	if _, err := util.StringToUUID(answerID); err != nil {
		return respondWithError(err, "invalid answer id", values.BadRequestBody, &tc)
	}

	status, message, err := api.DeleteAnswerHelper(r.Context(), answerID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

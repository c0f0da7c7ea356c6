package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/tracing"
	"github.com/qhub/qhub_api/util/values"
)

func (api *API) QuestionRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/", Handler(api.ListQuestionsHandler))
	mux.Method(http.MethodGet, "/{questionID}", Handler(api.GetQuestion))
	mux.Method(http.MethodGet, "/{questionID}/answers", Handler(api.ListAnswers))

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/", Handler(api.AskQuestion))
		r.Method(http.MethodPost, "/{questionID}/vote", Handler(api.VoteQuestion))
		r.Method(http.MethodPost, "/{questionID}/flag", Handler(api.FlagQuestion))
		r.Method(http.MethodPost, "/{questionID}/answers", Handler(api.PostAnswer))
	})

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin, api.RequireAdmin)
		r.Method(http.MethodDelete, "/{questionID}", Handler(api.DeleteQuestion))
	})

	return mux
}

func (api *API) AskQuestion(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.CreateQuestionRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	question, status, message, err := api.AskQuestionHelper(r.Context(), userID.String(), req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       question,
	}
}

func (api *API) ListQuestionsHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	tag := r.URL.Query().Get("tag")

	questions, status, message, err := api.ListQuestionsHelper(r.Context(), tag)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       questions,
	}
}

func (api *API) GetQuestion(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	questionID := chi.URLParam(r, "questionID")
	if _, err := util.StringToUUID(questionID); err != nil {
		return respondWithError(err, "invalid question id", values.BadRequestBody, &tc)
	}

	question, status, message, err := api.GetQuestionHelper(r.Context(), questionID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       question,
	}
}

func (api *API) VoteQuestion(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	questionID := chi.URLParam(r, "questionID")
	if _, err := util.StringToUUID(questionID); err != nil {
		return respondWithError(err, "invalid question id", values.BadRequestBody, &tc)
	}

	var req model.VoteRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	result, status, message, err := api.VoteQuestionHelper(r.Context(), questionID, userID.String(), req)
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

func (api *API) FlagQuestion(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	questionID := chi.URLParam(r, "questionID")
	if _, err := util.StringToUUID(questionID); err != nil {
		return respondWithError(err, "invalid question id", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	flag, status, message, err := api.FlagContentHelper(r.Context(), model.FlagTargetQuestion, questionID, userID)
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

func (api *API) DeleteQuestion(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	questionID := chi.URLParam(r, "questionID")
	if _, err := util.StringToUUID(questionID); err != nil {
		return respondWithError(err, "invalid question id", values.BadRequestBody, &tc)
	}

	status, message, err := api.DeleteQuestionHelper(r.Context(), questionID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

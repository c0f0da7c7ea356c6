package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/tracing"
	"github.com/qhub/qhub_api/util/values"
)

type SuggestTagsRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type SuggestTagsResponse struct {
	SuggestedTags []string `json:"suggested_tags"`
}

type SummarizeRequest struct {
	Content string `json:"content" validate:"required"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type NextWordRequest struct {
	Text string `json:"text" validate:"required"`
}

type NextWordResponse struct {
	Predictions []string `json:"predictions"`
}

func (api *API) AIRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodPost, "/suggest-tags", Handler(api.SuggestTags))
	mux.Method(http.MethodPost, "/summarize-answer", Handler(api.SummarizeAnswer))
	mux.Method(http.MethodPost, "/next-word", Handler(api.NextWord))

	return mux
}

func (api *API) SuggestTags(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	if api.AI == nil {
		return respondWithError(errors.New("ai service not configured"), "tag suggestion unavailable", values.Error, &tc)
	}

	var req SuggestTagsRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "title is required", values.BadRequestBody, &tc)
	}

	tags, err := api.AI.SuggestTags(r.Context(), req.Title, req.Description)
	if err != nil {
		return respondWithError(err, "unable to suggest tags", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Tags suggested successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       SuggestTagsResponse{SuggestedTags: tags},
	}
}

func (api *API) SummarizeAnswer(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	if api.AI == nil {
		return respondWithError(errors.New("ai service not configured"), "summarization unavailable", values.Error, &tc)
	}

	var req SummarizeRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "content is required", values.BadRequestBody, &tc)
	}

	summary, err := api.AI.Summarize(r.Context(), req.Content)
	if err != nil {
		return respondWithError(err, "unable to summarize answer", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Answer summarized successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       SummarizeResponse{Summary: summary},
	}
}

func (api *API) NextWord(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	if api.AI == nil {
		return respondWithError(errors.New("ai service not configured"), "prediction unavailable", values.Error, &tc)
	}

	var req NextWordRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "text is required", values.BadRequestBody, &tc)
	}

	words, err := api.AI.NextWords(r.Context(), req.Text)
	if err != nil {
		return respondWithError(err, "unable to predict next words", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Prediction generated successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       NextWordResponse{Predictions: words},
	}
}

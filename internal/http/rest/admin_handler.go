package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/tracing"
	"github.com/qhub/qhub_api/util/values"
)

func (api *API) AdminRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin, api.RequireAdmin)
		r.Method(http.MethodGet, "/flags", Handler(api.ListFlagsHandler))
	})

	return mux
}

func (api *API) ListFlagsHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	flags, status, message, err := api.ListFlagsHelper(r.Context())
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       flags,
	}
}

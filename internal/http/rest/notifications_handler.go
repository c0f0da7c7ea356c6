package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/tracing"
	"github.com/qhub/qhub_api/util/values"
)

func (api *API) NotificationRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodGet, "/", Handler(api.ListNotifications))
		r.Method(http.MethodGet, "/count", Handler(api.UnreadCount))
		r.Method(http.MethodPost, "/mark-read", Handler(api.MarkNotificationsReadHandler))
		r.Method(http.MethodGet, "/ws", Handler(api.NotificationSocket))
	})

	return mux
}

func (api *API) ListNotifications(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	notifications, status, message, err := api.ListNotificationsHelper(r.Context(), userID, unreadOnly)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       notifications,
	}
}

func (api *API) UnreadCount(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	count, status, message, err := api.UnreadCountHelper(r.Context(), userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       count,
	}
}

func (api *API) MarkNotificationsReadHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.MarkReadHelper(r.Context(), userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

// NotificationSocket upgrades the request to a websocket and registers it
// for live pushes. A nil response tells the adapter the connection was
// hijacked.
func (api *API) NotificationSocket(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	api.Deps.WebSocket.HandleConnection(w, r, userID.String())
	return nil
}

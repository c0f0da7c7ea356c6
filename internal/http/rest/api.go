package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qhub/qhub_api/config"
	"github.com/qhub/qhub_api/internal/ai"
	deps "github.com/qhub/qhub_api/internal/debs"
	"github.com/qhub/qhub_api/util/values"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

type Handler func(w http.ResponseWriter, r *http.Request) *ServerResponse

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h(w, r)
	if resp == nil {
		// The handler hijacked the connection (websocket upgrade).
		return
	}
	respByte, err := json.Marshal(resp)
	if err != nil {
		writeErrorResponse(w, err, values.Error, "unable to marshal server response")
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

type API struct {
	Server *http.Server
	Config *config.Config
	Deps   *deps.Dependencies
	AI     *ai.Service
	DB     *pgxpool.Pool
}

// Init warms process-level state that must not be built lazily on the
// request path: the tag-vocabulary embeddings used by tag suggestion.
func (api *API) Init(ctx context.Context) error {
	if api.AI == nil {
		return nil
	}
	return api.AI.WarmTagEmbeddings(ctx)
}

func (api *API) Serve() error {
	api.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		Handler:      api.setUpServerHandler(),
	}
	return api.Server.ListenAndServe()
}

func (api *API) setUpServerHandler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestTracing)

	mux.Method(http.MethodPost, "/register", Handler(api.Register))
	mux.Method(http.MethodPost, "/login", Handler(api.Login))
	mux.Method(http.MethodPost, "/refresh", Handler(api.Refresh))

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodGet, "/me", Handler(api.Me))
		r.Method(http.MethodPost, "/logout", Handler(api.Logout))
	})

	mux.Mount("/questions", api.QuestionRoutes())
	mux.Mount("/answers", api.AnswerRoutes())
	mux.Mount("/notifications", api.NotificationRoutes())
	mux.Mount("/admin", api.AdminRoutes())
	mux.Mount("/ai", api.AIRoutes())

	return mux
}

func (a *API) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
	defer cancel()

	err := a.Server.Shutdown(ctx)
	if err != nil {
		return err
	}
	return nil
}

package deps

import (
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qhub/qhub_api/config"
	"github.com/qhub/qhub_api/internal/cache"
	"github.com/qhub/qhub_api/internal/db"
	"github.com/qhub/qhub_api/util/websockets"
)

type Dependencies struct {
	DB         *db.DB
	Embeddings *cache.EmbeddingCache
	WebSocket  *websockets.WebSocketManager
}

func New(cfg *config.Config) *Dependencies {
	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}

	ttl, err := time.ParseDuration(cfg.EmbeddingCacheTTL)
	if err != nil {
		log.Println("invalid EMBEDDING_CACHE_TTL, defaulting to 24h:", err)
		ttl = 24 * time.Hour
	}

	embeddings, err := cache.NewEmbeddingCache(cfg.RedisAddr, ttl)
	if err != nil {
		log.Panicln("failed to connect to redis", "error", err)
	}

	websocket := websockets.NewWebSocketManager()

	deps := Dependencies{
		DB:         database,
		Embeddings: embeddings,
		WebSocket:  websocket,
	}
	return &deps
}

func (d *Dependencies) Pool() *pgxpool.Pool {
	return d.DB.Pool()
}

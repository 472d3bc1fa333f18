package router

import (
	"net/http"
	"time"

	"gowarehouse/internal/api/player"
	"gowarehouse/internal/api/warehouse"
	"gowarehouse/internal/pkg/cache"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/middleware"
)

// RateLimit configura o limitador global. Client nil desliga o limitador.
type RateLimit struct {
	Client      cache.Client
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(playerHandler *player.Handler, warehouseHandler *warehouse.Handler,
	tokenSvc middleware.TokenService, limit RateLimit, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.NewAuthMiddleware(tokenSvc)

	// Health check
	mux.HandleFunc("GET /ping", PingHandler)

	// Públicas
	mux.HandleFunc("POST /v1/players", playerHandler.RegisterPlayerHandler)
	mux.HandleFunc("GET /v1/materials", warehouseHandler.ListMaterialsHandler)

	// Autenticadas
	mux.HandleFunc("GET /v1/players", auth(playerHandler.ListPlayersHandler))
	mux.HandleFunc("GET /v1/warehouses", auth(warehouseHandler.ListWarehousesHandler))
	mux.HandleFunc("POST /v1/warehouses", auth(warehouseHandler.OpenWarehouseHandler))
	mux.HandleFunc("GET /v1/warehouses/{id}", auth(warehouseHandler.GetWarehouseHandler))
	mux.HandleFunc("GET /v1/warehouses/{id}/materials/{name}", auth(warehouseHandler.MaterialCountHandler))
	mux.HandleFunc("POST /v1/warehouses/{id}/materials", auth(warehouseHandler.AddMaterialHandler))
	mux.HandleFunc("POST /v1/warehouses/{id}/materials/remove", auth(warehouseHandler.RemoveMaterialHandler))
	mux.HandleFunc("POST /v1/warehouses/{id}/moves", auth(warehouseHandler.MoveMaterialHandler))

	if limit.Client == nil {
		log.Warn("Rate limiter desativado: cache indisponível.", nil)
		return mux
	}
	return middleware.RateLimiter(limit.Client, limit.MaxRequests, limit.Period, log)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

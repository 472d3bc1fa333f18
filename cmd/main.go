package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gowarehouse/config"
	"gowarehouse/internal/api/player"
	"gowarehouse/internal/api/router"
	"gowarehouse/internal/api/warehouse"
	"gowarehouse/internal/domain"
	"gowarehouse/internal/observer"
	"gowarehouse/internal/pkg/cache"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/token"
	"gowarehouse/internal/repository/playerrepo"
	"gowarehouse/internal/service/inventoryservice"
)

func main() {
	log.Println("⚡ Inicializando serviço GoWarehouse...")

	// As variáveis podem vir só do ambiente (ex: Docker), então a ausência do .env não é fatal.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	zlog := logger.NewLogger(cfg.LogLevel)
	if s, ok := zlog.(interface{ Sync() error }); ok {
		defer s.Sync()
	}
	zlog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 1. Catálogo de materiais
	catalog, err := config.LoadMaterials(cfg.MaterialsFile)
	if err != nil {
		zlog.Fatal("Falha ao carregar catálogo de materiais.", err)
	}
	zlog.Info("Catálogo de materiais carregado.", map[string]interface{}{"file": cfg.MaterialsFile, "count": len(catalog.All())})

	// 2. Cache (Redis). Sem Redis o serviço sobe sem eventos e sem rate limit.
	observers := []domain.WarehouseObserver{observer.NewLoggingObserver(zlog)}
	limit := router.RateLimit{MaxRequests: cfg.RateLimitMaxRequests, Period: cfg.RateLimitPeriod}

	redisClient, err := cache.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.CacheTimeout)
	if err != nil {
		zlog.Warn("Redis indisponível; eventos e rate limit desativados.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		defer redisClient.Close()
		zlog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		limit.Client = redisClient
		if cfg.EventsChannel != "" {
			observers = append(observers, observer.NewRedisPublisher(redisClient, cfg.EventsChannel, cfg.CacheTimeout, zlog))
		}
	}

	// 3. Injeção de dependências: Repository -> Service -> Handler
	playerRepo := playerrepo.NewPlayerRepository(zlog)
	inventorySvc := inventoryservice.NewService(playerRepo, catalog, zlog, observers...)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	playerHandler := player.NewHandler(inventorySvc, tokenSvc, zlog)
	warehouseHandler := warehouse.NewHandler(inventorySvc, zlog)
	zlog.Debug("Handlers inicializados.", nil)

	// 4. Servidor
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(playerHandler, warehouseHandler, tokenSvc, limit, zlog),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("Servidor GoWarehouse ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Servidor falhou.", err)
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	zlog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("Desligamento do servidor forçado.", err)
	}

	zlog.Info("Servidor encerrado com sucesso.", nil)
}

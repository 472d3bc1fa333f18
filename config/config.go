package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do serviço de armazéns.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Catálogo de materiais (YAML)
	MaterialsFile string

	// Cache e eventos (Redis)
	RedisAddr     string
	CacheTimeout  time.Duration
	EventsChannel string // Canal Pub/Sub dos eventos de estoque; vazio desliga a publicação

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() (*Config, error) {
	secret, err := requireEnv("JWT_SECRET_KEY")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		MaterialsFile: getEnv("MATERIALS_FILE", "materials.yaml"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout:  getDurationEnv("CACHE_TIMEOUT_SEC", 2) * time.Second,
		EventsChannel: getEnv("EVENTS_CHANNEL", "warehouse-events"),

		JWTSecretKey: secret,
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	return cfg, nil
}

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// requireEnv lê uma variável obrigatória.
func requireEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("a variável de ambiente %s deve ser definida", key)
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration (sem unidade).
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gowarehouse/internal/api/player"
	"gowarehouse/internal/api/response"
	"gowarehouse/internal/api/router"
	"gowarehouse/internal/api/warehouse"
	"gowarehouse/internal/domain"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/token"
	"gowarehouse/internal/repository/playerrepo"
	"gowarehouse/internal/service/inventoryservice"
)

// MockCacheClient é uma implementação mock de cache.Client.
type MockCacheClient struct {
	mock.Mock
}

func (m *MockCacheClient) GetInt(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheClient) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheClient) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

type server struct {
	t       *testing.T
	handler http.Handler
}

func newServer(t *testing.T, limit router.RateLimit) *server {
	t.Helper()
	log := logger.NewNop()
	catalog := domain.NewCatalog(
		domain.NewMaterial("Iron", "Common metal", "iron_icon.png", 20),
		domain.NewMaterial("Copper", "Reddish metal", "copper_icon.png", 30),
	)
	svc := inventoryservice.NewService(playerrepo.NewPlayerRepository(log), catalog, log)
	tokens := token.NewService("segredo-de-teste", time.Hour)

	h := router.NewRouter(
		player.NewHandler(svc, tokens, log),
		warehouse.NewHandler(svc, log),
		tokens, limit, log,
	)
	return &server{t: t, handler: h}
}

func (s *server) do(method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *server) register(nickname string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/v1/players", "", player.RegisterRequest{Nickname: nickname})
	require.Equal(s.t, http.StatusCreated, rec.Code)
	var resp player.RegisterResponse
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func (s *server) open(tok string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/v1/warehouses", tok, nil)
	require.Equal(s.t, http.StatusCreated, rec.Code)
	var view domain.WarehouseView
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&view))
	return view.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestPing(t *testing.T) {
	s := newServer(t, router.RateLimit{})

	rec := s.do(http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRegisterPlayer_Duplicate(t *testing.T) {
	s := newServer(t, router.RateLimit{})
	s.register("neo")

	rec := s.do(http.MethodPost, "/v1/players", "", player.RegisterRequest{Nickname: "neo"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, rec).Category)
}

func TestRegisterPlayer_InvalidPayload(t *testing.T) {
	s := newServer(t, router.RateLimit{})

	rec := s.do(http.MethodPost, "/v1/players", "", map[string]string{"nick": "neo"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWarehouses_RequireToken(t *testing.T) {
	s := newServer(t, router.RateLimit{})

	rec := s.do(http.MethodGet, "/v1/warehouses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/v1/warehouses", "lixo", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListMaterials(t *testing.T) {
	s := newServer(t, router.RateLimit{})

	rec := s.do(http.MethodGet, "/v1/materials", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var materials []domain.Material
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&materials))
	require.Len(t, materials, 2)
	assert.Equal(t, "Iron", materials[0].Name())
	assert.Equal(t, 20, materials[0].MaxCapacity())
}

func TestStockLifecycle(t *testing.T) {
	s := newServer(t, router.RateLimit{})
	tok := s.register("neo")
	a := s.open(tok)
	b := s.open(tok)

	rec := s.do(http.MethodPost, "/v1/warehouses/"+a+"/materials", tok, domain.StockChangeRequest{Material: "Iron", Quantity: 12})
	require.Equal(t, http.StatusOK, rec.Code)
	var entry domain.StockEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entry))
	assert.Equal(t, 12, entry.Quantity)

	rec = s.do(http.MethodPost, "/v1/warehouses/"+a+"/materials/remove", tok, domain.StockChangeRequest{Material: "Iron", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/v1/warehouses/"+a+"/moves", tok, domain.MoveRequest{DestinationID: b, Material: "Iron", Quantity: 4})
	require.Equal(t, http.StatusOK, rec.Code)
	var moved domain.MoveResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&moved))
	assert.Equal(t, 6, moved.Source.Quantity)
	assert.Equal(t, 4, moved.Destination.Quantity)

	rec = s.do(http.MethodGet, "/v1/warehouses/"+b+"/materials/Iron", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entry))
	assert.Equal(t, 4, entry.Quantity)

	rec = s.do(http.MethodGet, "/v1/warehouses", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var views []domain.WarehouseView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	assert.Len(t, views, 2)
}

func TestStockRejections(t *testing.T) {
	s := newServer(t, router.RateLimit{})
	tok := s.register("neo")
	a := s.open(tok)

	tests := []struct {
		name     string
		path     string
		body     interface{}
		status   int
		category string
	}{
		{"capacidade", "/materials", domain.StockChangeRequest{Material: "Iron", Quantity: 21}, http.StatusConflict, "CAPACITY_EXCEEDED"},
		{"quantidade negativa", "/materials", domain.StockChangeRequest{Material: "Iron", Quantity: -1}, http.StatusBadRequest, "NEGATIVE_QUANTITY"},
		{"material ausente", "/materials/remove", domain.StockChangeRequest{Material: "Copper", Quantity: 1}, http.StatusNotFound, "MATERIAL_NOT_FOUND"},
		{"material desconhecido", "/materials", domain.StockChangeRequest{Material: "Mithril", Quantity: 1}, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/v1/warehouses/"+a+tt.path, tok, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.category, decodeError(t, rec).Category)
		})
	}
}

func TestWarehouseOfAnotherPlayerIsNotFound(t *testing.T) {
	s := newServer(t, router.RateLimit{})
	neo := s.register("neo")
	trinity := s.register("trinity")
	a := s.open(neo)

	rec := s.do(http.MethodGet, "/v1/warehouses/"+a, trinity, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimiterIsApplied(t *testing.T) {
	client := new(MockCacheClient)
	client.On("GetInt", mock.Anything, mock.Anything).Return(5, nil)
	s := newServer(t, router.RateLimit{Client: client, MaxRequests: 5, Period: time.Minute})

	rec := s.do(http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestListPlayers(t *testing.T) {
	s := newServer(t, router.RateLimit{})
	tok := s.register("trinity")
	s.register("neo")

	rec := s.do(http.MethodGet, "/v1/players", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/v1/players", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var players []domain.Player
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&players))
	require.Len(t, players, 2)
	assert.Equal(t, "neo", players[0].Nickname)
	assert.Equal(t, "trinity", players[1].Nickname)
}

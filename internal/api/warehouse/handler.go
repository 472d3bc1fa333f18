package warehouse

import (
	"context"
	"net/http"

	"gowarehouse/internal/api/response"
	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/middleware"
)

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	OpenWarehouse(ctx context.Context, nickname string) (domain.WarehouseView, error)
	ListWarehouses(ctx context.Context, nickname string) ([]domain.WarehouseView, error)
	GetWarehouse(ctx context.Context, nickname, warehouseID string) (domain.WarehouseView, error)
	AddMaterial(ctx context.Context, nickname, warehouseID string, req domain.StockChangeRequest) (domain.StockEntry, error)
	RemoveMaterial(ctx context.Context, nickname, warehouseID string, req domain.StockChangeRequest) (domain.StockEntry, error)
	MoveMaterial(ctx context.Context, nickname, sourceID string, req domain.MoveRequest) (domain.MoveResult, error)
	MaterialCount(ctx context.Context, nickname, warehouseID, materialName string) (domain.StockEntry, error)
	Materials() []domain.Material
}

// Handler agrupa todos os métodos de Handler de armazéns.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// nickname extrai o jogador autenticado. As rotas deste pacote ficam atrás do
// middleware de autenticação.
func (h *Handler) nickname(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetPlayerClaimsFromContext(r.Context())
	if !ok || claims.Nickname == "" {
		response.Handle(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Jogador não autenticado."), http.StatusOK)
		return "", false
	}
	return claims.Nickname, true
}

// OpenWarehouseHandler lida com POST /v1/warehouses.
func (h *Handler) OpenWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	nick, ok := h.nickname(w, r)
	if !ok {
		return
	}
	view, err := h.Service.OpenWarehouse(r.Context(), nick)
	response.Handle(w, r, h.Logger, view, err, http.StatusCreated)
}

// ListWarehousesHandler lida com GET /v1/warehouses.
func (h *Handler) ListWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	nick, ok := h.nickname(w, r)
	if !ok {
		return
	}
	views, err := h.Service.ListWarehouses(r.Context(), nick)
	response.Handle(w, r, h.Logger, views, err, http.StatusOK)
}

// GetWarehouseHandler lida com GET /v1/warehouses/{id}.
func (h *Handler) GetWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	nick, ok := h.nickname(w, r)
	if !ok {
		return
	}
	view, err := h.Service.GetWarehouse(r.Context(), nick, r.PathValue("id"))
	response.Handle(w, r, h.Logger, view, err, http.StatusOK)
}

// MaterialCountHandler lida com GET /v1/warehouses/{id}/materials/{name}.
func (h *Handler) MaterialCountHandler(w http.ResponseWriter, r *http.Request) {
	nick, ok := h.nickname(w, r)
	if !ok {
		return
	}
	entry, err := h.Service.MaterialCount(r.Context(), nick, r.PathValue("id"), r.PathValue("name"))
	response.Handle(w, r, h.Logger, entry, err, http.StatusOK)
}

// AddMaterialHandler lida com POST /v1/warehouses/{id}/materials.
func (h *Handler) AddMaterialHandler(w http.ResponseWriter, r *http.Request) {
	h.stockChange(w, r, h.Service.AddMaterial)
}

// RemoveMaterialHandler lida com POST /v1/warehouses/{id}/materials/remove.
func (h *Handler) RemoveMaterialHandler(w http.ResponseWriter, r *http.Request) {
	h.stockChange(w, r, h.Service.RemoveMaterial)
}

func (h *Handler) stockChange(w http.ResponseWriter, r *http.Request,
	op func(context.Context, string, string, domain.StockChangeRequest) (domain.StockEntry, error)) {
	nick, ok := h.nickname(w, r)
	if !ok {
		return
	}

	var req domain.StockChangeRequest
	if err := response.Decode(r, &req); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	entry, err := op(r.Context(), nick, r.PathValue("id"), req)
	response.Handle(w, r, h.Logger, entry, err, http.StatusOK)
}

// MoveMaterialHandler lida com POST /v1/warehouses/{id}/moves.
func (h *Handler) MoveMaterialHandler(w http.ResponseWriter, r *http.Request) {
	nick, ok := h.nickname(w, r)
	if !ok {
		return
	}

	var req domain.MoveRequest
	if err := response.Decode(r, &req); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.MoveMaterial(r.Context(), nick, r.PathValue("id"), req)
	response.Handle(w, r, h.Logger, result, err, http.StatusOK)
}

// ListMaterialsHandler lida com GET /v1/materials.
func (h *Handler) ListMaterialsHandler(w http.ResponseWriter, r *http.Request) {
	response.Handle(w, r, h.Logger, h.Service.Materials(), nil, http.StatusOK)
}

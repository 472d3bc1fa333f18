package observer

import (
	"time"

	"github.com/google/uuid"

	"gowarehouse/internal/domain"
)

// EventType identifica o tipo de mudança de estoque.
type EventType string

const (
	EventMaterialAdded   EventType = "MATERIAL_ADDED"
	EventMaterialRemoved EventType = "MATERIAL_REMOVED"
)

// MaterialEvent é a representação serializável de uma notificação de estoque.
type MaterialEvent struct {
	Type        EventType       `json:"type"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Material    domain.Material `json:"material"`
	Quantity    int             `json:"quantity"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// Func adapta duas funções para a interface domain.WarehouseObserver.
// Qualquer uma das funções pode ser nil.
type Func struct {
	Added   func(warehouseID uuid.UUID, material domain.Material, quantity int)
	Removed func(warehouseID uuid.UUID, material domain.Material, quantity int)
}

func (f *Func) OnMaterialAdded(warehouseID uuid.UUID, material domain.Material, quantity int) {
	if f.Added != nil {
		f.Added(warehouseID, material, quantity)
	}
}

func (f *Func) OnMaterialRemoved(warehouseID uuid.UUID, material domain.Material, quantity int) {
	if f.Removed != nil {
		f.Removed(warehouseID, material, quantity)
	}
}

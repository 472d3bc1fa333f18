package observer

import (
	"github.com/google/uuid"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/pkg/logger"
)

// LoggingObserver registra uma linha por evento de estoque.
type LoggingObserver struct {
	logger logger.Logger
}

// NewLoggingObserver cria o observer que escreve no logger informado.
func NewLoggingObserver(log logger.Logger) *LoggingObserver {
	return &LoggingObserver{logger: log}
}

func (o *LoggingObserver) OnMaterialAdded(warehouseID uuid.UUID, material domain.Material, quantity int) {
	o.logger.Info("Material adicionado ao armazém.", map[string]interface{}{
		"warehouse_id": warehouseID.String(),
		"material":     material.String(),
		"quantity":     quantity,
	})
}

func (o *LoggingObserver) OnMaterialRemoved(warehouseID uuid.UUID, material domain.Material, quantity int) {
	o.logger.Info("Material removido do armazém.", map[string]interface{}{
		"warehouse_id": warehouseID.String(),
		"material":     material.String(),
		"quantity":     quantity,
	})
}

package observer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/cache"
	"gowarehouse/internal/pkg/logger"
)

// RedisPublisher publica cada evento de estoque como JSON em um canal Redis.
// Falhas de publicação são registradas e nunca chegam a quem alterou o estoque.
type RedisPublisher struct {
	client  cache.Client
	channel string
	timeout time.Duration
	logger  logger.Logger
	now     func() time.Time
}

// NewRedisPublisher cria o publicador para o canal informado.
func NewRedisPublisher(client cache.Client, channel string, timeout time.Duration, log logger.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		timeout: timeout,
		logger:  log,
		now:     time.Now,
	}
}

func (p *RedisPublisher) OnMaterialAdded(warehouseID uuid.UUID, material domain.Material, quantity int) {
	p.publish(MaterialEvent{
		Type:        EventMaterialAdded,
		WarehouseID: warehouseID,
		Material:    material,
		Quantity:    quantity,
		OccurredAt:  p.now().UTC(),
	})
}

func (p *RedisPublisher) OnMaterialRemoved(warehouseID uuid.UUID, material domain.Material, quantity int) {
	p.publish(MaterialEvent{
		Type:        EventMaterialRemoved,
		WarehouseID: warehouseID,
		Material:    material,
		Quantity:    quantity,
		OccurredAt:  p.now().UTC(),
	})
}

func (p *RedisPublisher) publish(event MaterialEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Falha ao serializar evento de estoque.", apperror.NewInternalError("json", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload); err != nil {
		p.logger.Error("Falha ao publicar evento de estoque no Redis.", apperror.NewInternalError(p.channel, err))
		return
	}
	p.logger.Debug("Evento de estoque publicado.", map[string]interface{}{
		"channel":      p.channel,
		"type":         string(event.Type),
		"warehouse_id": event.WarehouseID.String(),
	})
}

package domain

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// Warehouse representa um armazém com materiais e suas quantidades.
//
// Para todo material rastreado vale 0 <= quantidade <= MaxCapacity. Uma única
// operação de Add/Remove é serializada por armazém; MoveMaterial não é atômico
// entre os dois armazéns e quem chama deve serializar o acesso ao par.
type Warehouse struct {
	id     uuid.UUID
	logger logger.Logger

	mu    sync.RWMutex
	stock map[Material]int

	obsMu     sync.RWMutex
	observers []WarehouseObserver
}

// Option configura a construção de um Warehouse.
type Option func(*Warehouse)

// WithStock pré-carrega o armazém. O mapa é copiado; entradas fora de
// [0, MaxCapacity] são descartadas com aviso.
func WithStock(stock map[Material]int) Option {
	return func(w *Warehouse) {
		for m, q := range stock {
			if q < 0 || q > m.maxCapacity {
				w.logger.Warn("Estoque inicial inválido descartado.", map[string]interface{}{
					"warehouse_id": w.id.String(),
					"material":     m.name,
					"quantity":     q,
					"max_capacity": m.maxCapacity,
				})
				continue
			}
			w.stock[m] = q
		}
	}
}

// NewWarehouse cria um armazém vazio com um identificador único.
func NewWarehouse(log logger.Logger, opts ...Option) *Warehouse {
	if log == nil {
		log = logger.NewNop()
	}
	w := &Warehouse{
		id:        uuid.New(),
		logger:    log,
		stock:     make(map[Material]int),
		observers: make([]WarehouseObserver, 0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// ID retorna o identificador imutável do armazém.
func (w *Warehouse) ID() uuid.UUID {
	return w.id
}

// AddMaterial adiciona quantity unidades do material.
func (w *Warehouse) AddMaterial(material *Material, quantity int) error {
	if quantity < 0 {
		return w.reject(apperror.ReasonNegativeQuantity, "A quantidade de material não pode ser negativa.", nil, quantity)
	}
	if material == nil {
		return w.reject(apperror.ReasonNilMaterial, "O material não pode ser nulo.", nil, quantity)
	}
	m := *material
	if quantity > m.maxCapacity {
		return w.reject(apperror.ReasonCapacityExceeded, "A quantidade não pode ser maior que a capacidade máxima.", &m, quantity)
	}

	w.mu.Lock()
	existing, tracked := w.stock[m]
	if tracked && quantity > m.maxCapacity-existing {
		w.mu.Unlock()
		return w.reject(apperror.ReasonCapacityExceeded, "Não é possível adicionar: capacidade máxima do material atingida.", &m, quantity)
	}
	w.stock[m] = existing + quantity
	w.mu.Unlock()

	w.logger.Debug("Material adicionado ao armazém.", map[string]interface{}{
		"warehouse_id": w.id.String(),
		"material":     m.name,
		"quantity":     quantity,
		"new_quantity": existing + quantity,
	})
	w.notifyMaterialAdded(m, quantity)
	return nil
}

// RemoveMaterial retira quantity unidades do material. O material precisa estar
// rastreado; a chave permanece mesmo quando o saldo chega a zero.
func (w *Warehouse) RemoveMaterial(material *Material, quantity int) error {
	if quantity < 0 {
		return w.reject(apperror.ReasonNegativeQuantity, "A quantidade de material não pode ser negativa.", nil, quantity)
	}
	if material == nil {
		return w.reject(apperror.ReasonNilMaterial, "O material não pode ser nulo.", nil, quantity)
	}
	m := *material

	w.mu.Lock()
	existing, tracked := w.stock[m]
	if !tracked {
		w.mu.Unlock()
		return w.reject(apperror.ReasonMaterialNotFound, "Não é possível remover: material não encontrado no armazém.", &m, quantity)
	}
	if existing < quantity {
		w.mu.Unlock()
		return w.reject(apperror.ReasonInsufficientStock, "Não é possível remover: material insuficiente no armazém.", &m, quantity)
	}
	w.stock[m] = existing - quantity
	w.mu.Unlock()

	w.logger.Debug("Material removido do armazém.", map[string]interface{}{
		"warehouse_id": w.id.String(),
		"material":     m.name,
		"quantity":     quantity,
		"new_quantity": existing - quantity,
	})
	w.notifyMaterialRemoved(m, quantity)
	return nil
}

// MoveMaterial transfere quantity unidades deste armazém para destination.
// Todas as pré-condições são verificadas antes de qualquer mutação; depois a
// transferência é um RemoveMaterial seguido de um AddMaterial, sem atomicidade
// entre os dois armazéns.
func (w *Warehouse) MoveMaterial(destination *Warehouse, material *Material, quantity int) error {
	if quantity < 0 {
		return w.reject(apperror.ReasonNegativeQuantity, "A quantidade de material não pode ser negativa.", nil, quantity)
	}
	if material == nil {
		return w.reject(apperror.ReasonNilMaterial, "O material não pode ser nulo.", nil, quantity)
	}
	if destination == nil {
		return w.reject(apperror.ReasonNilDestination, "O armazém de destino não pode ser nulo.", material, quantity)
	}
	m := *material

	w.mu.RLock()
	available, tracked := w.stock[m]
	w.mu.RUnlock()
	if !tracked {
		return w.reject(apperror.ReasonMaterialNotFound, "Não é possível mover: material não encontrado no armazém.", &m, quantity)
	}
	if available < quantity {
		return w.reject(apperror.ReasonInsufficientStock, "Não é possível mover: material insuficiente no armazém.", &m, quantity)
	}
	if quantity > m.maxCapacity-destination.count(m) {
		return w.reject(apperror.ReasonCapacityExceeded, "Não é possível mover: capacidade máxima atingida no destino.", &m, quantity)
	}

	if err := w.RemoveMaterial(&m, quantity); err != nil {
		return err
	}
	if err := destination.AddMaterial(&m, quantity); err != nil {
		// Só acontece se o destino mudou entre a verificação e o Add.
		w.logger.Error(fmt.Sprintf("Movimentação parcial: %d de %s saiu de %s mas não entrou em %s.",
			quantity, m.name, w.id, destination.id), err)
		return err
	}

	w.logger.Info("Material movido entre armazéns.", map[string]interface{}{
		"from_warehouse_id": w.id.String(),
		"to_warehouse_id":   destination.id.String(),
		"material":          m.name,
		"quantity":          quantity,
	})
	return nil
}

// MaterialCount retorna a quantidade do material. Um material nunca adicionado
// retorna 0; um material nulo é rejeitado com ErrNilMaterial.
func (w *Warehouse) MaterialCount(material *Material) (int, error) {
	if material == nil {
		return 0, w.reject(apperror.ReasonNilMaterial, "O material não pode ser nulo.", nil, 0)
	}

	w.mu.RLock()
	q, tracked := w.stock[*material]
	w.mu.RUnlock()
	if !tracked {
		w.logger.Debug("Material não encontrado no armazém.", map[string]interface{}{
			"warehouse_id": w.id.String(),
			"material":     material.name,
		})
		return 0, nil
	}
	return q, nil
}

// Has informa se o material está rastreado (mesmo com quantidade zero).
func (w *Warehouse) Has(material Material) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.stock[material]
	return ok
}

// Stock retorna uma cópia do estoque atual.
func (w *Warehouse) Stock() map[Material]int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[Material]int, len(w.stock))
	for m, q := range w.stock {
		out[m] = q
	}
	return out
}

// LogStock registra o conteúdo do armazém.
func (w *Warehouse) LogStock() {
	w.logger.Info(w.String(), nil)
}

func (w *Warehouse) String() string {
	stock := w.Stock()
	materials := make([]Material, 0, len(stock))
	for m := range stock {
		materials = append(materials, m)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i].name < materials[j].name })

	var b strings.Builder
	b.WriteString("Warehouse: ")
	b.WriteString(w.id.String())
	for _, m := range materials {
		fmt.Fprintf(&b, " [Material: %s Quantity: %d]\n", m, stock[m])
	}
	return b.String()
}

func (w *Warehouse) count(m Material) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stock[m]
}

// reject registra a rejeição e devolve o erro tipado correspondente.
func (w *Warehouse) reject(reason apperror.Reason, msg string, material *Material, quantity int) error {
	fields := map[string]interface{}{
		"warehouse_id": w.id.String(),
		"reason":       string(reason),
		"quantity":     quantity,
	}
	if material != nil {
		fields["material"] = material.name
	}
	w.logger.Info(msg, fields)
	return apperror.NewStockError(reason, msg)
}

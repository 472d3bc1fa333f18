package domain

import (
	"reflect"

	"github.com/google/uuid"
)

// WarehouseObserver recebe os eventos de mudança de estoque de um Warehouse.
// As chamadas são síncronas, na goroutine de quem disparou a mutação, e na
// ordem de registro. Um panic no observer propaga para o chamador.
type WarehouseObserver interface {
	OnMaterialAdded(warehouseID uuid.UUID, material Material, quantity int)
	OnMaterialRemoved(warehouseID uuid.UUID, material Material, quantity int)
}

// AddObserver registra um observer no final da lista.
func (w *Warehouse) AddObserver(observer WarehouseObserver) {
	w.obsMu.Lock()
	defer w.obsMu.Unlock()
	w.observers = append(w.observers, observer)
}

// RemoveObserver remove a primeira ocorrência do observer. Observers de tipo
// não comparável nunca são encontrados.
func (w *Warehouse) RemoveObserver(observer WarehouseObserver) {
	w.obsMu.Lock()
	defer w.obsMu.Unlock()

	for i, o := range w.observers {
		if sameObserver(o, observer) {
			w.observers = append(w.observers[:i], w.observers[i+1:]...)
			return
		}
	}
	w.logger.Info("Nenhum observer para remover no armazém.", map[string]interface{}{"warehouse_id": w.id.String()})
}

// snapshotObservers copia a lista para que callbacks possam (des)registrar observers.
func (w *Warehouse) snapshotObservers() []WarehouseObserver {
	w.obsMu.RLock()
	defer w.obsMu.RUnlock()
	if len(w.observers) == 0 {
		return nil
	}
	out := make([]WarehouseObserver, len(w.observers))
	copy(out, w.observers)
	return out
}

func (w *Warehouse) notifyMaterialAdded(material Material, quantity int) {
	observers := w.snapshotObservers()
	if len(observers) == 0 {
		w.logger.Debug("Nenhum observer para notificar.", map[string]interface{}{"warehouse_id": w.id.String()})
		return
	}
	for _, o := range observers {
		o.OnMaterialAdded(w.id, material, quantity)
	}
}

func (w *Warehouse) notifyMaterialRemoved(material Material, quantity int) {
	observers := w.snapshotObservers()
	if len(observers) == 0 {
		w.logger.Debug("Nenhum observer para notificar.", map[string]interface{}{"warehouse_id": w.id.String()})
		return
	}
	for _, o := range observers {
		o.OnMaterialRemoved(w.id, material, quantity)
	}
}

// sameObserver compara sem disparar panic em tipos dinâmicos não comparáveis.
func sameObserver(a, b WarehouseObserver) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

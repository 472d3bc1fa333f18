package domain_test

import (
	"testing"

	"pgregory.net/rapid"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/pkg/logger"
)

var propertyMaterials = []domain.Material{
	domain.NewMaterial("Iron", "Common metal", "iron_icon.png", 20),
	domain.NewMaterial("Copper", "Reddish metal", "copper_icon.png", 30),
	domain.NewMaterial("Gold", "Rare metal", "gold_icon.png", 5),
}

func TestProperty_StockStaysWithinCapacity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		warehouses := []*domain.Warehouse{
			domain.NewWarehouse(logger.NewNop()),
			domain.NewWarehouse(logger.NewNop()),
		}

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			w := warehouses[rapid.IntRange(0, 1).Draw(rt, "warehouse")]
			m := propertyMaterials[rapid.IntRange(0, len(propertyMaterials)-1).Draw(rt, "material")]
			q := rapid.IntRange(-5, 35).Draw(rt, "quantity")

			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				_ = w.AddMaterial(&m, q)
			case 1:
				_ = w.RemoveMaterial(&m, q)
			case 2:
				dst := warehouses[rapid.IntRange(0, 1).Draw(rt, "destination")]
				_ = w.MoveMaterial(dst, &m, q)
			}
		}

		for _, w := range warehouses {
			for m, q := range w.Stock() {
				if q < 0 || q > m.MaxCapacity() {
					rt.Fatalf("estoque fora dos limites: %s = %d", m.Name(), q)
				}
			}
		}
	})
}

func TestProperty_AddThenRemoveRestores(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := propertyMaterials[rapid.IntRange(0, len(propertyMaterials)-1).Draw(rt, "material")]
		w := domain.NewWarehouse(logger.NewNop())

		initial := rapid.IntRange(0, m.MaxCapacity()).Draw(rt, "initial")
		if err := w.AddMaterial(&m, initial); err != nil {
			rt.Fatalf("add inicial: %v", err)
		}
		q := rapid.IntRange(0, m.MaxCapacity()-initial).Draw(rt, "q")

		if err := w.AddMaterial(&m, q); err != nil {
			rt.Fatalf("add: %v", err)
		}
		if err := w.RemoveMaterial(&m, q); err != nil {
			rt.Fatalf("remove: %v", err)
		}

		got, _ := w.MaterialCount(&m)
		if got != initial {
			rt.Fatalf("esperado %d, obtido %d", initial, got)
		}
	})
}

func TestProperty_MoveConservesTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := propertyMaterials[rapid.IntRange(0, len(propertyMaterials)-1).Draw(rt, "material")]
		src := domain.NewWarehouse(logger.NewNop())
		dst := domain.NewWarehouse(logger.NewNop())

		_ = src.AddMaterial(&m, rapid.IntRange(0, m.MaxCapacity()).Draw(rt, "src"))
		_ = dst.AddMaterial(&m, rapid.IntRange(0, m.MaxCapacity()).Draw(rt, "dst"))
		beforeSrc, _ := src.MaterialCount(&m)
		beforeDst, _ := dst.MaterialCount(&m)

		q := rapid.IntRange(-2, m.MaxCapacity()+2).Draw(rt, "q")
		err := src.MoveMaterial(dst, &m, q)

		afterSrc, _ := src.MaterialCount(&m)
		afterDst, _ := dst.MaterialCount(&m)

		if afterSrc+afterDst != beforeSrc+beforeDst {
			rt.Fatalf("total mudou: %d+%d -> %d+%d", beforeSrc, beforeDst, afterSrc, afterDst)
		}
		if err != nil {
			if afterSrc != beforeSrc || afterDst != beforeDst {
				rt.Fatalf("movimentação rejeitada alterou estoque: %v", err)
			}
			return
		}
		if afterSrc != beforeSrc-q || afterDst != beforeDst+q {
			rt.Fatalf("movimentação de %d não aplicada corretamente", q)
		}
	})
}

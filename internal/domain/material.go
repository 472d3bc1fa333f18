package domain

import (
	"encoding/json"
	"fmt"
)

// Material representa um tipo de material armazenável.
// É um valor imutável e comparável: dois Materials com os mesmos campos são a
// mesma chave de estoque.
type Material struct {
	name        string
	description string
	icon        string
	maxCapacity int
}

// NewMaterial cria um Material. maxCapacity não é validado aqui; um valor negativo
// apenas faz com que nenhuma quantidade possa ser adicionada.
func NewMaterial(name, description, icon string, maxCapacity int) Material {
	return Material{
		name:        name,
		description: description,
		icon:        icon,
		maxCapacity: maxCapacity,
	}
}

func (m Material) Name() string        { return m.name }
func (m Material) Description() string { return m.description }
func (m Material) Icon() string        { return m.icon }

// MaxCapacity é o teto de estoque deste material em um único armazém.
func (m Material) MaxCapacity() int { return m.maxCapacity }

func (m Material) String() string {
	return fmt.Sprintf("[name='%s', description='%s', icon='%s', maxCapacity=%d]",
		m.name, m.description, m.icon, m.maxCapacity)
}

type materialJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	MaxCapacity int    `json:"max_capacity"`
}

// MarshalJSON expõe os campos privados nas respostas da API e nos eventos.
func (m Material) MarshalJSON() ([]byte, error) {
	return json.Marshal(materialJSON{
		Name:        m.name,
		Description: m.description,
		Icon:        m.icon,
		MaxCapacity: m.maxCapacity,
	})
}

func (m *Material) UnmarshalJSON(data []byte) error {
	var raw materialJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = NewMaterial(raw.Name, raw.Description, raw.Icon, raw.MaxCapacity)
	return nil
}

// Catalog indexa os materiais conhecidos pelo nome.
type Catalog struct {
	byName map[string]Material
	order  []string
}

// NewCatalog cria um catálogo. Em nomes repetidos, o último vence.
func NewCatalog(materials ...Material) *Catalog {
	c := &Catalog{byName: make(map[string]Material, len(materials))}
	for _, m := range materials {
		if _, exists := c.byName[m.name]; !exists {
			c.order = append(c.order, m.name)
		}
		c.byName[m.name] = m
	}
	return c
}

// Lookup busca um material pelo nome.
func (c *Catalog) Lookup(name string) (Material, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// All retorna os materiais na ordem de cadastro.
func (c *Catalog) All() []Material {
	out := make([]Material, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gowarehouse/internal/domain"
)

type materialEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	MaxCapacity int    `yaml:"max_capacity"`
}

type materialsFile struct {
	Materials []materialEntry `yaml:"materials"`
}

// LoadMaterials lê o catálogo de materiais de um arquivo YAML.
func LoadMaterials(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler catálogo de materiais: %w", err)
	}
	return ParseMaterials(data)
}

// ParseMaterials decodifica e valida o catálogo.
func ParseMaterials(data []byte) (*domain.Catalog, error) {
	var file materialsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("falha ao interpretar catálogo de materiais: %w", err)
	}
	if len(file.Materials) == 0 {
		return nil, fmt.Errorf("catálogo de materiais vazio")
	}

	seen := make(map[string]struct{}, len(file.Materials))
	materials := make([]domain.Material, 0, len(file.Materials))
	for i, e := range file.Materials {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("material #%d sem nome", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("material %q duplicado", name)
		}
		if e.MaxCapacity < 0 {
			return nil, fmt.Errorf("material %q com capacidade negativa (%d)", name, e.MaxCapacity)
		}
		seen[name] = struct{}{}
		materials = append(materials, domain.NewMaterial(name, e.Description, e.Icon, e.MaxCapacity))
	}

	return domain.NewCatalog(materials...), nil
}

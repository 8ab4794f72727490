package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/heritage-explorer/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// SizeTier - диаметр маркера региона, если итог строго больше Above
type SizeTier struct {
	Above int `yaml:"above"`
	Size  int `yaml:"size"`
}

type MapTables struct {
	ZoomThreshold  int                  `yaml:"zoom_threshold"`
	ZoomCaps       []domain.ZoomCap     `yaml:"zoom_caps"`
	DefaultView    domain.CountryView   `yaml:"default_view"`
	CountryViews   []domain.CountryView `yaml:"country_views"`
	AggregateSizes []SizeTier           `yaml:"aggregate_sizes"`
	RegionPrefixes []string             `yaml:"region_prefixes"`
	RegionNameMax  int                  `yaml:"region_name_max"`
}

// Tables - настраиваемые эвристики, вынесенные из кода
type Tables struct {
	Map        MapTables             `yaml:"map"`
	Categories domain.CategoryTables `yaml:"categories"`
}

// LoadTables читает таблицы из файла; пустой путь - встроенные значения
func LoadTables(path string) (*Tables, error) {
	data := defaultTables
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read tables file: %w", err)
		}
		data = b
	}
	return parseTables(data)
}

func parseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}

	// Лимиты и размеры проверяются сверху вниз
	sort.SliceStable(t.Map.ZoomCaps, func(i, j int) bool {
		return t.Map.ZoomCaps[i].MinZoom > t.Map.ZoomCaps[j].MinZoom
	})
	sort.SliceStable(t.Map.AggregateSizes, func(i, j int) bool {
		return t.Map.AggregateSizes[i].Above > t.Map.AggregateSizes[j].Above
	})
	return &t, nil
}

func (t *Tables) validate() error {
	if t.Map.ZoomThreshold <= 0 {
		return fmt.Errorf("tables: map.zoom_threshold must be positive")
	}
	if len(t.Map.ZoomCaps) == 0 {
		return fmt.Errorf("tables: map.zoom_caps is empty")
	}
	for _, c := range t.Map.ZoomCaps {
		if c.Limit <= 0 {
			return fmt.Errorf("tables: zoom cap for zoom %d must be positive", c.MinZoom)
		}
	}
	if len(t.Map.AggregateSizes) == 0 {
		return fmt.Errorf("tables: map.aggregate_sizes is empty")
	}
	if t.Categories.DefaultColor == "" || t.Categories.DefaultIcon == "" {
		return fmt.Errorf("tables: categories defaults are required")
	}
	return nil
}

package domain

import "strings"

// KeywordRule срабатывает, если категория содержит одно из Category
// или тип содержит одно из Type (регистр не учитывается).
type KeywordRule struct {
	Category []string `yaml:"category" json:"category,omitempty"`
	Type     []string `yaml:"type" json:"type,omitempty"`
	Value    string   `yaml:"value" json:"value"`
}

func (r KeywordRule) matches(category, typ string) bool {
	for _, kw := range r.Category {
		if strings.Contains(category, strings.ToLower(kw)) {
			return true
		}
	}
	for _, kw := range r.Type {
		if strings.Contains(typ, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

type LegendItem struct {
	Key   string `yaml:"key" json:"key"`
	Color string `yaml:"color" json:"color"`
}

// CategoryTables - упорядоченные таблицы цветов и иконок
type CategoryTables struct {
	Colors       []KeywordRule `yaml:"colors"`
	Icons        []KeywordRule `yaml:"icons"`
	DefaultColor string        `yaml:"default_color"`
	DefaultIcon  string        `yaml:"default_icon"`
	Legend       []LegendItem  `yaml:"legend"`
}

type Classification struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Classifier сопоставляет категорию и тип цвету и иконке. Побеждает первое
// совпавшее правило, поэтому порядок таблиц значим.
type Classifier struct {
	tables CategoryTables
}

func NewClassifier(tables CategoryTables) *Classifier {
	return &Classifier{tables: tables}
}

func (c *Classifier) Classify(category, typ string) Classification {
	return Classification{
		Color: c.Color(category, typ),
		Icon:  c.Icon(category, typ),
	}
}

func (c *Classifier) Color(category, typ string) string {
	return firstMatch(c.tables.Colors, category, typ, c.tables.DefaultColor)
}

func (c *Classifier) Icon(category, typ string) string {
	return firstMatch(c.tables.Icons, category, typ, c.tables.DefaultIcon)
}

func (c *Classifier) Legend() []LegendItem {
	return c.tables.Legend
}

func firstMatch(rules []KeywordRule, category, typ, fallback string) string {
	category = strings.ToLower(category)
	typ = strings.ToLower(typ)
	for _, r := range rules {
		if r.matches(category, typ) {
			return r.Value
		}
	}
	return fallback
}

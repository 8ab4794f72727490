package domain

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Sort keys supported by /monumentos
const (
	SortNameAsc          = "nombre_asc"
	SortNameDesc         = "nombre_desc"
	SortMunicipalityAsc  = "municipio_asc"
	SortMunicipalityDesc = "municipio_desc"
)

const (
	DefaultPageSize = 24
	DefaultSort     = SortNameAsc
)

// FilterCriteria - плоский набор критериев поиска. Пустые значения не передаются.
type FilterCriteria struct {
	Country      string `json:"pais,omitempty"`
	Region       string `json:"region,omitempty"`
	Province     string `json:"provincia,omitempty"`
	Municipality string `json:"municipio,omitempty"`

	Category string `json:"categoria,omitempty"`
	Type     string `json:"tipo,omitempty"`
	Style    string `json:"estilo,omitempty"`

	OnlyWikidata bool `json:"solo_wikidata,omitempty"`
	OnlyImage    bool `json:"solo_imagen,omitempty"`

	Query string `json:"q,omitempty"`
	Sort  string `json:"sort,omitempty"`
	Page  int    `json:"page,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// Params кодирует критерии в query-параметры backend
func (f FilterCriteria) Params() url.Values {
	v := url.Values{}
	setIf := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	setIf("pais", f.Country)
	setIf("region", f.Region)
	setIf("provincia", f.Province)
	setIf("municipio", f.Municipality)
	setIf("categoria", f.Category)
	setIf("tipo", f.Type)
	setIf("estilo", f.Style)
	if f.OnlyWikidata {
		v.Set("solo_wikidata", "true")
	}
	if f.OnlyImage {
		v.Set("solo_imagen", "true")
	}
	setIf("q", f.Query)
	setIf("sort", f.Sort)
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// ActiveCount - число активных фильтров (текст, сортировка и пагинация не считаются)
func (f FilterCriteria) ActiveCount() int {
	n := 0
	for _, s := range []string{f.Country, f.Region, f.Province, f.Municipality, f.Category, f.Type, f.Style} {
		if s != "" {
			n++
		}
	}
	if f.OnlyWikidata {
		n++
	}
	if f.OnlyImage {
		n++
	}
	return n
}

// CascadeScope - уровень каскада, для которого запрашиваются списки значений
type CascadeScope struct {
	Country  string
	Region   string
	Province string
}

func (s CascadeScope) Params() url.Values {
	v := url.Values{}
	if s.Country != "" {
		v.Set("pais", s.Country)
	}
	if s.Region != "" {
		v.Set("region", s.Region)
	}
	if s.Province != "" {
		v.Set("provincia", s.Province)
	}
	return v
}

// FilterOption - значение списка выбора. Backend отдаёт либо строки,
// либо объекты с привязкой к верхним уровням каскада.
type FilterOption struct {
	Value    string `json:"value"`
	Label    string `json:"label,omitempty"`
	Total    int    `json:"total,omitempty"`
	Country  string `json:"pais,omitempty"`
	Region   string `json:"region,omitempty"`
	Province string `json:"provincia,omitempty"`
}

func (o *FilterOption) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = FilterOption{Value: s, Label: s}
		return nil
	}

	type plain FilterOption
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Label == "" {
		p.Label = p.Value
	}
	*o = FilterOption(p)
	return nil
}

// FilterOptions - списки значений каскада из /filtros
type FilterOptions struct {
	Countries      []FilterOption `json:"paises"`
	Regions        []FilterOption `json:"regiones"`
	Provinces      []FilterOption `json:"provincias"`
	Municipalities []FilterOption `json:"municipios"`
	Categories     []FilterOption `json:"categorias"`
	Types          []FilterOption `json:"tipos"`
	Styles         []FilterOption `json:"estilos"`
}

// Visible отфильтровывает списки по уже выбранным уровням каскада.
// Значения без привязки (пустое поле) считаются подходящими.
func (o FilterOptions) Visible(f FilterCriteria) FilterOptions {
	match := func(want, have string) bool {
		return want == "" || have == "" || want == have
	}

	out := o
	out.Regions = filterOptions(o.Regions, func(opt FilterOption) bool {
		return match(f.Country, opt.Country)
	})
	out.Provinces = filterOptions(o.Provinces, func(opt FilterOption) bool {
		return match(f.Country, opt.Country) && match(f.Region, opt.Region)
	})
	out.Municipalities = filterOptions(o.Municipalities, func(opt FilterOption) bool {
		return match(f.Country, opt.Country) && match(f.Region, opt.Region) && match(f.Province, opt.Province)
	})
	return out
}

func filterOptions(opts []FilterOption, keep func(FilterOption) bool) []FilterOption {
	result := make([]FilterOption, 0, len(opts))
	for _, opt := range opts {
		if keep(opt) {
			result = append(result, opt)
		}
	}
	return result
}

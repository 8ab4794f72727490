package dto

import "github.com/heritage-explorer/internal/domain"

// LoginRequest - вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest - регистрация нового пользователя
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"nombre" validate:"required,max=100"`
	Language string `json:"idioma_por_defecto,omitempty" validate:"omitempty,oneof=es en"`
}

// GoogleLoginRequest - федеративный вход; нужен хотя бы один из токенов
type GoogleLoginRequest struct {
	IDToken     string `json:"id_token" validate:"required_without=AccessToken"`
	AccessToken string `json:"access_token" validate:"required_without=IDToken"`
}

// ProfileUpdateRequest - изменение профиля
type ProfileUpdateRequest struct {
	Name     string `json:"nombre" validate:"omitempty,max=100"`
	Language string `json:"idioma_por_defecto" validate:"omitempty,oneof=es en"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// SearchRequest - параметры поиска /monumentos
type SearchRequest struct {
	Country      string `query:"pais"`
	Region       string `query:"region"`
	Province     string `query:"provincia"`
	Municipality string `query:"municipio"`
	Category     string `query:"categoria"`
	Type         string `query:"tipo"`
	Style        string `query:"estilo"`
	OnlyWikidata bool   `query:"solo_wikidata"`
	OnlyImage    bool   `query:"solo_imagen"`
	Query        string `query:"q" validate:"omitempty,max=200"`
	Sort         string `query:"sort" validate:"omitempty,oneof=nombre_asc nombre_desc municipio_asc municipio_desc"`
	Page         int    `query:"page" validate:"omitempty,min=1"`
	Limit        int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Criteria переводит запрос в критерии фильтра
func (r SearchRequest) Criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		Country:      r.Country,
		Region:       r.Region,
		Province:     r.Province,
		Municipality: r.Municipality,
		Category:     r.Category,
		Type:         r.Type,
		Style:        r.Style,
		OnlyWikidata: r.OnlyWikidata,
		OnlyImage:    r.OnlyImage,
		Query:        r.Query,
		Sort:         r.Sort,
		Page:         r.Page,
		Limit:        r.Limit,
	}
}

// FilterUpdateRequest - полная замена критериев фильтра
type FilterUpdateRequest struct {
	Country      string `json:"pais"`
	Region       string `json:"region"`
	Province     string `json:"provincia"`
	Municipality string `json:"municipio"`
	Category     string `json:"categoria"`
	Type         string `json:"tipo"`
	Style        string `json:"estilo"`
	OnlyWikidata bool   `json:"solo_wikidata"`
	OnlyImage    bool   `json:"solo_imagen"`
	Query        string `json:"q" validate:"omitempty,max=200"`
	Sort         string `json:"sort" validate:"omitempty,oneof=nombre_asc nombre_desc municipio_asc municipio_desc"`
	Page         int    `json:"page" validate:"omitempty,min=1"`
	Limit        int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

func (r FilterUpdateRequest) Criteria() domain.FilterCriteria {
	return SearchRequest(r).Criteria()
}

// MaxProposalImages - ограничение формы предложения
const MaxProposalImages = 5

// ProposalRequest - предложение нового объекта. Пустые поля не отправляются.
type ProposalRequest struct {
	Name         string `form:"denominacion" validate:"required,max=300"`
	Country      string `form:"pais" validate:"required"`
	Region       string `form:"comunidad_autonoma"`
	Province     string `form:"provincia"`
	Municipality string `form:"municipio"`
	Locality     string `form:"localidad"`
	Category     string `form:"categoria"`
	Type         string `form:"tipo"`
	Description  string `form:"descripcion" validate:"max=5000"`
	Style        string `form:"estilo"`
	Material     string `form:"material"`
	Inception    string `form:"inception"`
	Architect    string `form:"arquitecto"`
	WikipediaURL string `form:"wikipedia_url" validate:"omitempty,url"`
	Latitude     string `form:"latitud" validate:"omitempty,latitude"`
	Longitude    string `form:"longitud" validate:"omitempty,longitude"`

	Images []domain.Attachment `form:"-" validate:"-"`
}

// SetCountry меняет страну и очищает зависимые поля, как форма на устройстве
func (r *ProposalRequest) SetCountry(country string) {
	if r.Country == country {
		return
	}
	r.Country = country
	r.Region = ""
	r.Province = ""
}

// Fields возвращает поля формы в порядке backend
func (r ProposalRequest) Fields() []domain.FormField {
	return []domain.FormField{
		{Name: "denominacion", Value: r.Name},
		{Name: "pais", Value: r.Country},
		{Name: "comunidad_autonoma", Value: r.Region},
		{Name: "provincia", Value: r.Province},
		{Name: "municipio", Value: r.Municipality},
		{Name: "localidad", Value: r.Locality},
		{Name: "categoria", Value: r.Category},
		{Name: "tipo", Value: r.Type},
		{Name: "descripcion", Value: r.Description},
		{Name: "estilo", Value: r.Style},
		{Name: "material", Value: r.Material},
		{Name: "inception", Value: r.Inception},
		{Name: "arquitecto", Value: r.Architect},
		{Name: "wikipedia_url", Value: r.WikipediaURL},
		{Name: "latitud", Value: r.Latitude},
		{Name: "longitud", Value: r.Longitude},
	}
}

// ContactRequest - сообщение в поддержку
type ContactRequest struct {
	Email   string `form:"email" validate:"required,email"`
	Subject string `form:"asunto" validate:"required,max=200"`
	Message string `form:"mensaje" validate:"required,max=5000"`

	Attachments []domain.Attachment `form:"-" validate:"-"`
}

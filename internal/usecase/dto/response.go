package dto

import "github.com/heritage-explorer/internal/domain"

// HealthResponse - ответ health-check
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Cache   string `json:"cache"`
}

// GalleryImage - изображение галереи, URL уже нормализован
type GalleryImage struct {
	URL    string `json:"url"`
	Title  string `json:"titulo,omitempty"`
	Author string `json:"autor,omitempty"`
}

// MonumentDetailResponse - карточка объекта с производными полями для экрана
type MonumentDetailResponse struct {
	Monument   *domain.Monument `json:"monumento"`
	Gallery    []GalleryImage   `json:"galeria"`
	Color      string           `json:"color"`
	Icon       string           `json:"icon"`
	Location   string           `json:"ubicacion,omitempty"`
	Inception  string           `json:"inception,omitempty"`
	MapsURL    string           `json:"maps_url,omitempty"`
	MapPageURL string           `json:"map_page_url,omitempty"`
	Links      []ExternalLink   `json:"enlaces,omitempty"`
	IsFavorite bool             `json:"favorito"`
}

// ExternalLink - внешняя ссылка карточки
type ExternalLink struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// MonumentSummary - строка списка результатов
type MonumentSummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"denominacion"`
	Subtitle   string `json:"subtitulo,omitempty"`
	Category   string `json:"categoria,omitempty"`
	Type       string `json:"tipo,omitempty"`
	ImageURL   string `json:"imagen_url,omitempty"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	IsFavorite bool   `json:"favorito"`
}

// MonumentListResponse - страница результатов
type MonumentListResponse struct {
	Items      []MonumentSummary `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

// SessionResponse - текущее состояние сессии
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	FavoriteIDs   []int64      `json:"favorite_ids"`
}

// ToggleFavoriteResponse - итоговое состояние после переключения
type ToggleFavoriteResponse struct {
	ID       int64 `json:"id"`
	Favorite bool  `json:"favorito"`
}

// FiltersResponse - критерии и видимые списки каскада
type FiltersResponse struct {
	Criteria    domain.FilterCriteria `json:"criteria"`
	Options     domain.FilterOptions  `json:"options"`
	ActiveCount int                   `json:"active_count"`
}

package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/utils"
	"github.com/heritage-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// FeaturedLimit - число объектов в подборке главного экрана
const FeaturedLimit = 8

// FavoriteChecker - источник состояния избранного для списков и карточек
type FavoriteChecker interface {
	IsFavorite(id int64) bool
}

// CatalogUseCase обрабатывает чтение каталога: статистику, поиск, карточки
type CatalogUseCase struct {
	monumentRepo repository.MonumentRepository
	favoriteRepo repository.FavoriteRepository
	cacheRepo    repository.CacheRepository
	classifier   *domain.Classifier
	favorites    FavoriteChecker
	statsTTL     time.Duration
	bceLabel     string
	logger       *zap.Logger
}

// NewCatalogUseCase создает новый экземпляр CatalogUseCase. cacheRepo может быть nil.
func NewCatalogUseCase(
	monumentRepo repository.MonumentRepository,
	favoriteRepo repository.FavoriteRepository,
	cacheRepo repository.CacheRepository,
	classifier *domain.Classifier,
	favorites FavoriteChecker,
	statsTTL time.Duration,
	language string,
	logger *zap.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		monumentRepo: monumentRepo,
		favoriteRepo: favoriteRepo,
		cacheRepo:    cacheRepo,
		classifier:   classifier,
		favorites:    favorites,
		statsTTL:     statsTTL,
		bceLabel:     bceLabel(language),
		logger:       logger,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *CatalogUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	// 1. Проверяем кеш
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetStats(ctx)
		if err == nil && cached != nil {
			uc.logger.Debug("Statistics fetched from cache")
			return cached, nil
		}
		if err != nil {
			uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
		}
	}

	// 2. Получаем с backend
	return uc.RefreshStatistics(ctx)
}

// RefreshStatistics принудительно обновляет статистику
func (uc *CatalogUseCase) RefreshStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats, err := uc.monumentRepo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get statistics: %w", err)
	}

	// 3. Кешируем
	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetStats(ctx, stats, uc.statsTTL); err != nil {
			uc.logger.Warn("Failed to cache stats", zap.Error(err))
		}
	}
	return stats, nil
}

// Search возвращает страницу результатов поиска
func (uc *CatalogUseCase) Search(ctx context.Context, criteria domain.FilterCriteria) (*dto.MonumentListResponse, error) {
	if criteria.Sort == "" {
		criteria.Sort = domain.DefaultSort
	}
	if criteria.Limit <= 0 {
		criteria.Limit = domain.DefaultPageSize
	}
	if criteria.Page <= 0 {
		criteria.Page = 1
	}

	page, err := uc.monumentRepo.ListMonuments(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("list monuments: %w", err)
	}
	return uc.listResponse(page), nil
}

// Featured - объекты с Wikidata и изображением для главного экрана
func (uc *CatalogUseCase) Featured(ctx context.Context) ([]dto.MonumentSummary, error) {
	page, err := uc.monumentRepo.ListMonuments(ctx, domain.FilterCriteria{
		OnlyWikidata: true,
		OnlyImage:    true,
		Limit:        FeaturedLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("featured monuments: %w", err)
	}
	return uc.listResponse(page).Items, nil
}

// ListFavorites возвращает страницу избранного текущего пользователя
func (uc *CatalogUseCase) ListFavorites(ctx context.Context, page, limit int) (*dto.MonumentListResponse, error) {
	result, err := uc.favoriteRepo.ListFavorites(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return uc.listResponse(result), nil
}

// GetMonument возвращает карточку объекта с галереей и производными полями
func (uc *CatalogUseCase) GetMonument(ctx context.Context, id int64) (*dto.MonumentDetailResponse, error) {
	if id <= 0 {
		return nil, apperrors.ErrInvalidMonumentID
	}

	m, err := uc.monumentRepo.GetMonument(ctx, id)
	if err != nil {
		return nil, err
	}

	cls := uc.classifier.Classify(m.Category, m.Type)
	resp := &dto.MonumentDetailResponse{
		Monument:   m,
		Gallery:    Gallery(m),
		Color:      cls.Color,
		Icon:       cls.Icon,
		Location:   LocationLine(m),
		Inception:  FormatInception(m.Inception, uc.bceLabel),
		Links:      externalLinks(m),
		IsFavorite: uc.isFavorite(m.ID),
	}
	if pt, ok := m.Coordinates(); ok {
		resp.MapsURL = fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
			strconv.FormatFloat(pt.Lat, 'f', -1, 64),
			strconv.FormatFloat(pt.Lng, 'f', -1, 64))
		resp.MapPageURL = fmt.Sprintf("/monumentos/%d/map", m.ID)
	}
	return resp, nil
}

func (uc *CatalogUseCase) listResponse(page *domain.MonumentPage) *dto.MonumentListResponse {
	resp := &dto.MonumentListResponse{
		Items:      make([]dto.MonumentSummary, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}
	for i := range page.Items {
		m := &page.Items[i]
		cls := uc.classifier.Classify(m.Category, m.Type)
		summary := dto.MonumentSummary{
			ID:         m.ID,
			Name:       m.Name,
			Subtitle:   joinParts(m.Municipality, m.Province),
			Category:   m.Category,
			Type:       m.Type,
			Color:      cls.Color,
			Icon:       cls.Icon,
			IsFavorite: uc.isFavorite(m.ID),
		}
		if urls := utils.GalleryURLs(m.ImageURL); len(urls) > 0 {
			summary.ImageURL = urls[0]
		}
		resp.Items = append(resp.Items, summary)
	}
	return resp
}

func (uc *CatalogUseCase) isFavorite(id int64) bool {
	return uc.favorites != nil && uc.favorites.IsFavorite(id)
}

// Gallery раскрывает URL через "|", убирает дубликаты по исходному URL
// и нормализует каждый для показа. Основное изображение идёт первым.
func Gallery(m *domain.Monument) []dto.GalleryImage {
	raw := make([]domain.MonumentImage, 0, len(m.Images)+1)
	if m.ImageURL != "" {
		raw = append(raw, domain.MonumentImage{URL: m.ImageURL, Title: m.Name})
	}
	raw = append(raw, m.Images...)

	seen := make(map[string]struct{})
	gallery := make([]dto.GalleryImage, 0, len(raw))
	for _, img := range raw {
		for _, u := range utils.SplitImageURLs(img.URL) {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}

			normalized, ok := utils.NormalizeImageURL(u)
			if !ok {
				continue
			}
			gallery = append(gallery, dto.GalleryImage{URL: normalized, Title: img.Title, Author: img.Author})
		}
	}
	return gallery
}

// LocationLine - "municipio, provincia, comunidad[, país]"; Испания не указывается
func LocationLine(m *domain.Monument) string {
	country := m.Country
	if country == "España" {
		country = ""
	}
	return joinParts(m.Municipality, m.Province, m.Region, country)
}

var (
	bcePattern = regexp.MustCompile(`^-0*(\d+)-\d{2}-\d{2}`)
	cePattern  = regexp.MustCompile(`^\+?(\d{1,4})-\d{2}-\d{2}`)
)

// FormatInception приводит дату Wikidata к году: "-0500-01-01" → "500 a.C.",
// "+1200-01-01" → "1200". Остальные значения возвращаются как есть.
func FormatInception(value, bce string) string {
	if value == "" {
		return ""
	}
	if m := bcePattern.FindStringSubmatch(value); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			return fmt.Sprintf("%d %s", year, bce)
		}
	}
	if m := cePattern.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	return value
}

func bceLabel(language string) string {
	if language == "en" {
		return "BC"
	}
	return "a.C."
}

func externalLinks(m *domain.Monument) []dto.ExternalLink {
	var links []dto.ExternalLink
	if m.WikipediaURL != "" {
		links = append(links, dto.ExternalLink{Kind: "wikipedia", URL: m.WikipediaURL})
	}
	if m.WikidataID != "" {
		links = append(links, dto.ExternalLink{Kind: "wikidata", URL: "https://www.wikidata.org/wiki/" + m.WikidataID})
	}
	if m.CommonsCategory != "" {
		links = append(links, dto.ExternalLink{
			Kind: "commons",
			URL:  "https://commons.wikimedia.org/wiki/Category:" + strings.ReplaceAll(m.CommonsCategory, " ", "_"),
		})
	}
	return links
}

func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

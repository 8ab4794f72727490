package utils

import (
	"net/url"
	"strings"
)

const (
	imageProxyBase  = "https://wsrv.nl/"
	imageProxyWidth = "600"
)

// Хосты, которые блокируют hotlink без User-Agent/Referer
var proxiedImageHosts = []string{"wikimedia.org", "wikipedia.org"}

// NormalizeImageURL приводит URL изображения к загружаемому виду.
// Пустой URL - отсутствие изображения (false).
func NormalizeImageURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	finalURL := raw
	if strings.HasPrefix(finalURL, "http://") {
		finalURL = "https://" + strings.TrimPrefix(finalURL, "http://")
	}

	if strings.HasPrefix(finalURL, imageProxyBase) || !isProxiedHost(finalURL) {
		return finalURL, true
	}

	// Декодируем один раз, иначе %20 превращается в %2520
	decoded, err := url.PathUnescape(finalURL)
	if err != nil {
		decoded = finalURL
	}

	return imageProxyBase + "?url=" + url.QueryEscape(decoded) + "&w=" + imageProxyWidth, true
}

func isProxiedHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		for _, host := range proxiedImageHosts {
			if strings.Contains(raw, host) {
				return true
			}
		}
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range proxiedImageHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// SplitImageURLs разбивает поле с несколькими URL, разделёнными "|"
func SplitImageURLs(raw string) []string {
	parts := strings.Split(raw, "|")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GalleryURLs разбивает, нормализует и удаляет дубликаты, сохраняя порядок
func GalleryURLs(raws ...string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(raws))
	for _, raw := range raws {
		for _, part := range SplitImageURLs(raw) {
			normalized, ok := NormalizeImageURL(part)
			if !ok {
				continue
			}
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
	}
	return result
}

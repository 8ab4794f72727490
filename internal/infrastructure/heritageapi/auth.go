package heritageapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
)

var (
	_ repository.AuthRepository     = (*Client)(nil)
	_ repository.FavoriteRepository = (*Client)(nil)
)

func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResponse, error) {
	return c.authenticate(ctx, "auth.register", "/auth/register", reg)
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	return c.authenticate(ctx, "auth.login", "/auth/login", creds)
}

func (c *Client) LoginWithGoogle(ctx context.Context, data domain.GoogleAuth) (*domain.AuthResponse, error) {
	return c.authenticate(ctx, "auth.google", "/auth/google", data)
}

func (c *Client) authenticate(ctx context.Context, endpoint, path string, body interface{}) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := c.do(ctx, request{
		endpoint: endpoint,
		method:   http.MethodPost,
		path:     path,
		jsonBody: body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me возвращает профиль по текущему токену
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, request{endpoint: "auth.me", method: http.MethodGet, path: "/auth/me"}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateMe(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	var u domain.User
	err := c.do(ctx, request{
		endpoint: "auth.update",
		method:   http.MethodPut,
		path:     "/auth/me",
		jsonBody: upd,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListFavorites(ctx context.Context, page, limit int) (*domain.MonumentPage, error) {
	var result domain.MonumentPage
	err := c.do(ctx, request{
		endpoint: "favoritos.list",
		method:   http.MethodGet,
		path:     "/favoritos",
		query:    pageParams(page, limit),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) FavoriteIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := c.do(ctx, request{endpoint: "favoritos.ids", method: http.MethodGet, path: "/favoritos/ids"}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) AddFavorite(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		endpoint: "favoritos.add",
		method:   http.MethodPost,
		path:     "/favoritos/" + strconv.FormatInt(id, 10),
	}, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		endpoint: "favoritos.remove",
		method:   http.MethodDelete,
		path:     "/favoritos/" + strconv.FormatInt(id, 10),
	}, nil)
}

func pageParams(page, limit int) url.Values {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

package api

import (
	"context"
	"net/http"
)

func (c *Client) GetUser(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.Call(ctx, http.MethodGet, "/user", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) PutUser(ctx context.Context, name, avatarURL string) error {
	return c.Call(ctx, http.MethodPut, "/user", ProfileUpdate{Name: name, AvatarURL: avatarURL}, nil)
}

// ListSearches returns the user's searches in backend order.
func (c *Client) ListSearches(ctx context.Context) ([]SearchRecord, error) {
	var out []SearchRecord
	if err := c.Call(ctx, http.MethodGet, "/searches", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSearch(ctx context.Context, query string) error {
	return c.Call(ctx, http.MethodPost, "/searches", newSearch{Query: query}, nil)
}

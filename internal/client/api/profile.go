package api

import (
	"context"

	"github.com/credor-app/credor/internal/client/models"
)

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (models.Profile, error) {
	var resp profileResponse
	if err := c.get(ctx, "/api/user/profile", token, &resp); err != nil {
		return models.Profile{}, err
	}
	return models.Profile{Name: resp.Name, Email: resp.Email, Age: resp.Age}, nil
}

// UpdateProfile sends a partial profile update. All four fields travel in
// the body, nil serialized as JSON null meaning "unchanged".
func (c *Client) UpdateProfile(ctx context.Context, token string, req UpdateProfileRequest) error {
	return c.put(ctx, "/api/user/profile", token, req, nil)
}

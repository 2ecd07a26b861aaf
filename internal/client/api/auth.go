package api

import (
	"context"
	"net/url"
)

// Login exchanges credentials for a bearer token. A server rejection comes
// back as *Error; a connectivity failure wraps common.ErrUnavailable.
func (c *Client) Login(ctx context.Context, email, password string) (AuthPayload, error) {
	var resp loginResponse
	err := c.post(ctx, "/api/user/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return AuthPayload{}, err
	}
	return AuthPayload{Token: resp.AccessToken, Name: resp.User.UserMetadata.Name}, nil
}

// Register creates an account and, like Login, returns the issued token.
func (c *Client) Register(ctx context.Context, name string, age int, gender, email, password string) (AuthPayload, error) {
	body := registerRequest{Name: name, Age: age, Gender: gender, Email: email, Password: password}

	var resp registerResponse
	if err := c.post(ctx, "/api/user/register", "", body, &resp); err != nil {
		return AuthPayload{}, err
	}

	// The register response's name field is not always populated; the
	// submitted name is authoritative either way.
	return AuthPayload{Token: resp.AccessToken, Name: name}, nil
}

// CheckEmailTaken asks the backend whether an email address is already in
// use. Unauthenticated.
func (c *Client) CheckEmailTaken(ctx context.Context, email string) (bool, error) {
	var resp emailCheckResponse
	path := "/api/auth/email?email=" + url.QueryEscape(email)
	if err := c.get(ctx, path, "", &resp); err != nil {
		return false, err
	}
	return resp.Taken, nil
}

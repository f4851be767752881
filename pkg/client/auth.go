package client

import (
	"context"
	"net/http"
)

type RegisterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

func (client *Client) Register(ctx context.Context, input RegisterInput) (AuthUser, error) {
	user := AuthUser{}
	if err := client.doJSON(ctx, http.MethodPost, "/api/auth/register", input, &user); err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

// Login authenticates and persists the returned session.
func (client *Client) Login(ctx context.Context, email string, password string) (AuthUser, error) {
	body := map[string]string{"email": email, "password": password}
	user := AuthUser{}
	if err := client.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &user); err != nil {
		return AuthUser{}, err
	}

	err := client.sessions.Save(Session{
		Token: user.Token,
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

// Logout drops the local session. The token is stateless, so there is nothing
// to revoke server-side.
func (client *Client) Logout() error {
	return client.sessions.Clear()
}

func (client *Client) SendVerificationEmail(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return client.doJSON(ctx, http.MethodPost, "/api/auth/send-verification-email", body, nil)
}

package auth

import (
	"context"

	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/transport"
)

type gatewayHTTP struct{ api *transport.Client }

func NewGatewayHTTP(api *transport.Client) Gateway { return &gatewayHTTP{api: api} }

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (g *gatewayHTTP) Login(ctx context.Context, email, password string) (*model.AuthSession, error) {
	var out model.AuthSession
	if err := g.api.Post(ctx, "/auth/login", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) Register(ctx context.Context, payload RegisterPayload) (*model.AuthSession, error) {
	var out model.AuthSession
	if err := g.api.Post(ctx, "/auth/register", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) Logout(ctx context.Context) error {
	return g.api.Post(ctx, "/auth/logout", nil, nil)
}

func (g *gatewayHTTP) CurrentUser(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := g.api.Get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package supportlink

import (
	"context"
	"errors"
	"net/http"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/transport"
)

type gatewayHTTP struct {
	api *transport.Client
}

func NewGatewayHTTP(api *transport.Client) Gateway {
	return &gatewayHTTP{api: api}
}

func (g *gatewayHTTP) Redeem(ctx context.Context, payload RedeemPayload) (*model.AuthSession, error) {
	var out model.AuthSession
	if err := g.api.Post(ctx, "/auth/register", payload, &out); err != nil {
		// The register endpoint answers 404 only when the share code does not
		// resolve, so the status alone identifies a bad code. No message
		// sniffing.
		var srv *apierr.ServerError
		if errors.As(err, &srv) && srv.Status == http.StatusNotFound {
			return nil, &apierr.InvalidCodeError{Code: payload.ShareCode}
		}
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) CurrentUser(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := g.api.Get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package payment

import (
	"context"
	"net/url"

	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/transport"
)

type gatewayHTTP struct {
	api *transport.Client
}

func NewGatewayHTTP(api *transport.Client) Gateway {
	return &gatewayHTTP{api: api}
}

func (g *gatewayHTTP) List(ctx context.Context) ([]*model.Payment, error) {
	var out []*model.Payment
	if err := g.api.Get(ctx, "/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gatewayHTTP) Get(ctx context.Context, id string) (*model.Payment, error) {
	var out model.Payment
	if err := g.api.Get(ctx, "/payments/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) Create(ctx context.Context, req *CreateRequest) (*model.Payment, error) {
	var out model.Payment
	if err := g.api.Post(ctx, "/payments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

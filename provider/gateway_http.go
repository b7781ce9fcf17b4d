package provider

import (
	"context"
	"fmt"
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

func (g *gatewayHTTP) List(ctx context.Context) ([]*model.Doctor, error) {
	var out []*model.Doctor
	if err := g.api.Get(ctx, "/doctors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gatewayHTTP) Get(ctx context.Context, id string) (*model.Doctor, error) {
	var out model.Doctor
	if err := g.api.Get(ctx, "/doctors/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) AvailableSlots(ctx context.Context, id, date string) (*model.Doctor, error) {
	var out model.Doctor
	path := fmt.Sprintf("/doctors/%s/slots?date=%s", url.PathEscape(id), url.QueryEscape(date))
	if err := g.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

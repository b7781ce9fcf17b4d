package appointment

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

func (g *gatewayHTTP) List(ctx context.Context) ([]*model.Appointment, error) {
	var out []*model.Appointment
	if err := g.api.Get(ctx, "/appointments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *gatewayHTTP) Get(ctx context.Context, id string) (*model.Appointment, error) {
	var out model.Appointment
	if err := g.api.Get(ctx, "/appointments/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) Create(ctx context.Context, booking *model.AppointmentBooking) (*model.Appointment, error) {
	var out model.Appointment
	if err := g.api.Post(ctx, "/appointments", booking, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	var out model.Appointment
	if err := g.api.Delete(ctx, "/appointments/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

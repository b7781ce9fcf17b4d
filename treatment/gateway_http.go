package treatment

import (
	"context"

	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/transport"
)

type gatewayHTTP struct {
	api *transport.Client
}

func NewGatewayHTTP(api *transport.Client) Gateway {
	return &gatewayHTTP{api: api}
}

func (g *gatewayHTTP) Get(ctx context.Context) (*model.Treatment, error) {
	var out model.Treatment
	if err := g.api.Get(ctx, "/treatments", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) AddMedication(ctx context.Context, m *model.Medication) (*model.Medication, error) {
	var out model.Medication
	if err := g.api.Post(ctx, "/treatments/medications", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gatewayHTTP) AddSupplement(ctx context.Context, sp *model.Supplement) (*model.Supplement, error) {
	var out model.Supplement
	if err := g.api.Post(ctx, "/treatments/supplements", sp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

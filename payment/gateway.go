// Package payment records consultation charges. A completed payment is what
// finalizes its appointment; the backend owns that transition.
package payment

import (
	"context"

	"github.com/eros-saude/eros-go/model"
)

// CreateRequest is the create-payment payload.
type CreateRequest struct {
	AppointmentID string              `json:"appointmentId"`
	Amount        float64             `json:"amount"`
	Method        model.PaymentMethod `json:"method"`
}

type Gateway interface {
	List(ctx context.Context) ([]*model.Payment, error)
	Get(ctx context.Context, id string) (*model.Payment, error)
	Create(ctx context.Context, req *CreateRequest) (*model.Payment, error)
}

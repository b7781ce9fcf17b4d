// Package appointment manages the authenticated user's consultations.
package appointment

import (
	"context"

	"github.com/eros-saude/eros-go/model"
)

type Gateway interface {
	List(ctx context.Context) ([]*model.Appointment, error)
	Get(ctx context.Context, id string) (*model.Appointment, error)
	Create(ctx context.Context, booking *model.AppointmentBooking) (*model.Appointment, error)
	Cancel(ctx context.Context, id string) (*model.Appointment, error)
}

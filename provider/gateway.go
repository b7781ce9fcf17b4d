// Package provider reads the care-provider catalog. Providers are read-only
// from the client; the backend owns them.
package provider

import (
	"context"

	"github.com/eros-saude/eros-go/model"
)

type Gateway interface {
	List(ctx context.Context) ([]*model.Doctor, error)
	Get(ctx context.Context, id string) (*model.Doctor, error)
	AvailableSlots(ctx context.Context, id, date string) (*model.Doctor, error)
}

// Package treatment tracks the user's current medications and supplements.
// Entries are append-only from the client.
package treatment

import (
	"context"

	"github.com/eros-saude/eros-go/model"
)

type Gateway interface {
	Get(ctx context.Context) (*model.Treatment, error)
	AddMedication(ctx context.Context, m *model.Medication) (*model.Medication, error)
	AddSupplement(ctx context.Context, sp *model.Supplement) (*model.Supplement, error)
}

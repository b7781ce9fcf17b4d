package treatment

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/model"
)

type Service struct {
	gw  Gateway
	log zerolog.Logger
}

func NewService(gw Gateway, log zerolog.Logger) *Service {
	return &Service{gw: gw, log: log}
}

// Get never returns nil slices; callers render empty lists, not nulls.
func (s *Service) Get(ctx context.Context) (*model.Treatment, error) {
	t, err := s.gw.Get(ctx)
	if err != nil {
		return nil, err
	}
	if t.Medications == nil {
		t.Medications = []*model.Medication{}
	}
	if t.Supplements == nil {
		t.Supplements = []*model.Supplement{}
	}
	return t, nil
}

func (s *Service) AddMedication(ctx context.Context, m *model.Medication) (*model.Medication, error) {
	if err := requireEntry(m.Name, m.Dosage, m.Frequency); err != nil {
		return nil, err
	}
	added, err := s.gw.AddMedication(ctx, m)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("medication_id", added.ID).Str("name", added.Name).Msg("medication added")
	return added, nil
}

func (s *Service) AddSupplement(ctx context.Context, sp *model.Supplement) (*model.Supplement, error) {
	if err := requireEntry(sp.Name, sp.Dosage, sp.Frequency); err != nil {
		return nil, err
	}
	added, err := s.gw.AddSupplement(ctx, sp)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("supplement_id", added.ID).Str("name", added.Name).Msg("supplement added")
	return added, nil
}

func requireEntry(name, dosage, frequency string) error {
	if strings.TrimSpace(name) == "" {
		return apierr.NewValidation("name", "is required")
	}
	if strings.TrimSpace(dosage) == "" {
		return apierr.NewValidation("dosage", "is required")
	}
	if strings.TrimSpace(frequency) == "" {
		return apierr.NewValidation("frequency", "is required")
	}
	return nil
}

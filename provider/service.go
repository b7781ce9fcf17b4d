package provider

import (
	"context"

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

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.gw.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*model.Doctor, error) {
	if id == "" {
		return nil, apierr.NewValidation("id", "is required")
	}
	return s.gw.Get(ctx, id)
}

// AvailableSlots returns the provider with its slot list narrowed to the
// slots still open on the given date.
func (s *Service) AvailableSlots(ctx context.Context, id, date string) (*model.Doctor, error) {
	if id == "" {
		return nil, apierr.NewValidation("id", "is required")
	}
	if date == "" {
		return nil, apierr.NewValidation("date", "is required")
	}
	doc, err := s.gw.AvailableSlots(ctx, id, date)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("doctor_id", id).Str("date", date).Int("slots", len(doc.AvailableSlots)).Msg("fetched availability")
	return doc, nil
}

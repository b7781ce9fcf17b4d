package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/model"
)

// FormatAmount renders a monetary amount with exactly two decimal places, the
// only format receipts and history rows ever show.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

type Service struct {
	gw  Gateway
	log zerolog.Logger
}

func NewService(gw Gateway, log zerolog.Logger) *Service {
	return &Service{gw: gw, log: log}
}

func (s *Service) List(ctx context.Context) ([]*model.Payment, error) {
	return s.gw.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*model.Payment, error) {
	if id == "" {
		return nil, apierr.NewValidation("id", "is required")
	}
	return s.gw.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.Payment, error) {
	if req.AppointmentID == "" {
		return nil, apierr.NewValidation("appointmentId", "is required")
	}
	switch req.Method {
	case model.PaymentPix, model.PaymentCreditCard, model.PaymentDebitCard:
	default:
		return nil, apierr.NewValidation("method", "is not a supported payment method")
	}
	p, err := s.gw.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("payment_id", p.ID).
		Str("appointment_id", p.AppointmentID).
		Str("method", string(p.Method)).
		Str("amount", FormatAmount(p.Amount)).
		Msg("payment recorded")
	return p, nil
}

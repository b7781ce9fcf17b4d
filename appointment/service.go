package appointment

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/model"
)

// Cancelable reports whether an appointment may still be cancelled by the
// user. Confirmed, completed and already-cancelled appointments are final.
func Cancelable(a *model.Appointment) bool {
	return a.Status == model.AppointmentScheduled || a.Status == model.AppointmentPending
}

type Service struct {
	gw  Gateway
	log zerolog.Logger
}

func NewService(gw Gateway, log zerolog.Logger) *Service {
	return &Service{gw: gw, log: log}
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.gw.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apierr.NewValidation("id", "is required")
	}
	return s.gw.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, booking *model.AppointmentBooking) (*model.Appointment, error) {
	if booking.DoctorID == "" {
		return nil, apierr.NewValidation("doctorId", "is required")
	}
	if booking.Date == "" {
		return nil, apierr.NewValidation("date", "is required")
	}
	if booking.Time == "" {
		return nil, apierr.NewValidation("time", "is required")
	}
	appt, err := s.gw.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("appointment_id", appt.ID).Str("doctor_id", appt.DoctorID).Msg("appointment created")
	return appt, nil
}

// Cancel rejects locally when the appointment is past the point of
// cancellation, sparing a round trip the backend would refuse anyway.
func (s *Service) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Cancelable(appt) {
		return nil, apierr.NewValidation("status", "appointment can no longer be cancelled")
	}
	return s.gw.Cancel(ctx, id)
}

// Upcoming returns the appointments that are still ahead of the user, sorted
// by date then time. CANCELLED and COMPLETED entries are excluded.
func (s *Service) Upcoming(ctx context.Context) ([]*model.Appointment, error) {
	all, err := s.gw.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Appointment
	for _, a := range all {
		switch a.Status {
		case model.AppointmentCancelled, model.AppointmentCompleted:
			continue
		}
		out = append(out, a)
	}
	sortByDate(out)
	return out, nil
}

// Past returns completed and cancelled appointments, most recent first.
func (s *Service) Past(ctx context.Context) ([]*model.Appointment, error) {
	all, err := s.gw.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Appointment
	for _, a := range all {
		switch a.Status {
		case model.AppointmentCancelled, model.AppointmentCompleted:
			out = append(out, a)
		}
	}
	sortByDate(out)
	reverse(out)
	return out, nil
}

func sortByDate(appts []*model.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}

func reverse(appts []*model.Appointment) {
	for i, j := 0, len(appts)-1; i < j; i, j = i+1, j-1 {
		appts[i], appts[j] = appts[j], appts[i]
	}
}

package payment

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/auth"
	"github.com/eros-saude/eros-go/erostest"
	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/session"
	"github.com/eros-saude/eros-go/transport"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{150, "150.00"},
		{150.5, "150.50"},
		{0, "0.00"},
		{99.999, "100.00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.amount); got != tc.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &CreateRequest{Method: model.PaymentPix}); !apierr.IsValidation(err) {
		t.Errorf("missing appointment id: %v", err)
	}
	if _, err := svc.Create(ctx, &CreateRequest{AppointmentID: "a1", Method: "boleto"}); !apierr.IsValidation(err) {
		t.Errorf("unknown method: %v", err)
	}
}

func authedClient(t *testing.T, srv *erostest.Server) *transport.Client {
	t.Helper()
	store := session.NewMemStore()
	api := transport.NewClient(srv.BaseURL(), store)
	sess, err := auth.NewGatewayHTTP(api).Register(context.Background(), auth.RegisterPayload{
		Name:     "Ana",
		Email:    "ana@eros.app",
		Password: "secret1",
		UserType: model.UserTypePregnant,
	})
	if err != nil {
		t.Fatalf("register test user: %v", err)
	}
	store.SetToken(sess.Token)
	return api
}

func TestCreateFinalizesAppointment(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()
	srv.SeedDoctor(&model.Doctor{ID: "1", Name: "Dra. Ana Costa", Specialty: "Obstetrícia"})

	api := authedClient(t, srv)
	svc := NewService(NewGatewayHTTP(api), zerolog.Nop())
	ctx := context.Background()

	var appt model.Appointment
	if err := api.Post(ctx, "/appointments", &model.AppointmentBooking{DoctorID: "1", Date: "12/11", Time: "9:00"}, &appt); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	p, err := svc.Create(ctx, &CreateRequest{AppointmentID: appt.ID, Method: model.PaymentCreditCard})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != model.PaymentStatusCompleted {
		t.Errorf("payment status = %s", p.Status)
	}
	if p.Amount != erostest.ConsultationFee {
		t.Errorf("amount = %v, want %v", p.Amount, erostest.ConsultationFee)
	}
	if p.AppointmentID != appt.ID {
		t.Errorf("payment references %q, want %q", p.AppointmentID, appt.ID)
	}

	stored := srv.AppointmentByID(appt.ID)
	if stored.Status != model.AppointmentConfirmed {
		t.Errorf("appointment after payment = %s, want CONFIRMED", stored.Status)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("Get returned %q", got.ID)
	}
}

func TestCreateUnknownAppointment(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()

	svc := NewService(NewGatewayHTTP(authedClient(t, srv)), zerolog.Nop())
	_, err := svc.Create(context.Background(), &CreateRequest{AppointmentID: "missing", Method: model.PaymentPix})
	if !apierr.IsServer(err) {
		t.Fatalf("expected ServerError, got %v", err)
	}
}

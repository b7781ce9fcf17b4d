package treatment

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

func TestAddEntriesValidateRequiredFields(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	ctx := context.Background()

	meds := []*model.Medication{
		{Dosage: "40mg", Frequency: "1x ao dia"},
		{Name: "Ácido Fólico", Frequency: "1x ao dia"},
		{Name: "Ácido Fólico", Dosage: "40mg"},
		{Name: "   ", Dosage: "40mg", Frequency: "1x ao dia"},
	}
	for _, m := range meds {
		if _, err := svc.AddMedication(ctx, m); !apierr.IsValidation(err) {
			t.Errorf("AddMedication(%+v) = %v, want validation error", m, err)
		}
	}

	if _, err := svc.AddSupplement(ctx, &model.Supplement{Name: "Ferro"}); !apierr.IsValidation(err) {
		t.Errorf("AddSupplement without dosage/frequency = %v", err)
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

func TestTreatmentsAreAppendOnlyPerUser(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()

	svc := NewService(NewGatewayHTTP(authedClient(t, srv)), zerolog.Nop())
	ctx := context.Background()

	empty, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty.Medications) != 0 || len(empty.Supplements) != 0 {
		t.Fatalf("fresh treatment not empty: %+v", empty)
	}
	if empty.Medications == nil || empty.Supplements == nil {
		t.Fatalf("aggregate has nil slices")
	}

	med, err := svc.AddMedication(ctx, &model.Medication{
		Name:      "Ácido Fólico",
		Dosage:    "40mg",
		Frequency: "1x ao dia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if med.ID == "" {
		t.Errorf("medication got no id")
	}

	if _, err := svc.AddSupplement(ctx, &model.Supplement{
		Name:      "Ferro",
		Dosage:    "30mg",
		Frequency: "2x ao dia",
		Purpose:   "Prevenção de anemia",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	agg, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agg.Medications) != 1 || len(agg.Supplements) != 1 {
		t.Fatalf("aggregate = %d meds, %d supplements", len(agg.Medications), len(agg.Supplements))
	}
	if agg.Medications[0].Name != "Ácido Fólico" {
		t.Errorf("medication name = %q", agg.Medications[0].Name)
	}
}

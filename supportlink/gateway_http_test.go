package supportlink

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/erostest"
	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/session"
	"github.com/eros-saude/eros-go/transport"
)

func TestRedeemCreatesOneActiveLink(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()
	beatriz := srv.SeedPregnant("Beatriz", "beatriz@eros.app", "secret1", "AB12-CD34")

	store := session.NewMemStore()
	r := NewRedemption(NewGatewayHTTP(transport.NewClient(srv.BaseURL(), store)), store, zerolog.Nop())
	ctx := context.Background()

	if err := r.EnterCode("ab12-cd34", "Mãe"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.EnterIdentity(Identity{
		Name:            "Regina",
		Email:           "regina@eros.app",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := srv.SupportNetworkSize(beatriz.ID)
	sess, err := r.Submit(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := srv.SupportNetworkSize(beatriz.ID); got != before+1 {
		t.Errorf("network size = %d, want %d", got, before+1)
	}
	link := sess.User.SupportingPregnant
	if link == nil {
		t.Fatalf("no back-reference on the new account")
	}
	if link.Relationship != "Mãe" || link.Status != model.LinkStatusActive {
		t.Errorf("link = {%s, %s}, want {Mãe, ACTIVE}", link.Relationship, link.Status)
	}
	if link.Pregnant.ID != beatriz.ID {
		t.Errorf("link bound to %q, want issuer %q", link.Pregnant.ID, beatriz.ID)
	}
	if _, ok := store.Token(); !ok {
		t.Errorf("session not persisted after redemption")
	}
}

func TestRedeemUnknownCodeCreatesNothing(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()
	srv.SeedPregnant("Beatriz", "beatriz@eros.app", "secret1", "AB12-CD34")

	store := session.NewMemStore()
	r := NewRedemption(NewGatewayHTTP(transport.NewClient(srv.BaseURL(), store)), store, zerolog.Nop())

	if err := r.EnterCode("ZZZZ-0000", "Mãe"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.EnterIdentity(Identity{
		Name:            "Regina",
		Email:           "regina@eros.app",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usersBefore := srv.UserCount()
	_, err := r.Submit(context.Background())
	if !apierr.IsInvalidCode(err) {
		t.Fatalf("expected InvalidCodeError, got %v", err)
	}
	if srv.UserCount() != usersBefore {
		t.Errorf("failed redemption created an account")
	}
	if _, ok := store.Token(); ok {
		t.Errorf("failed redemption persisted a session")
	}
}

func TestIssuerSeesNewMemberInNetwork(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()
	srv.SeedPregnant("Beatriz", "beatriz@eros.app", "secret1", "AB12-CD34")

	// Redeem as the supporter.
	supStore := session.NewMemStore()
	r := NewRedemption(NewGatewayHTTP(transport.NewClient(srv.BaseURL(), supStore)), supStore, zerolog.Nop())
	if err := r.EnterCode("AB12-CD34", "Mãe"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.EnterIdentity(Identity{
		Name:            "Regina",
		Email:           "regina@eros.app",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Log in as the issuer and read the network.
	issStore := session.NewMemStore()
	issAPI := transport.NewClient(srv.BaseURL(), issStore)
	var sess model.AuthSession
	if err := issAPI.Post(context.Background(), "/auth/login", map[string]string{
		"email":    "beatriz@eros.app",
		"password": "secret1",
	}, &sess); err != nil {
		t.Fatalf("login issuer: %v", err)
	}
	issStore.SetToken(sess.Token)

	svc := NewService(NewGatewayHTTP(issAPI), zerolog.Nop())
	members, err := svc.Network(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("network has %d members, want 1", len(members))
	}
	m := members[0]
	if m.Relationship != "Mãe" || m.Status != model.LinkStatusActive {
		t.Errorf("member = {%s, %s}", m.Relationship, m.Status)
	}
	if m.Support == nil || m.Support.Name != "Regina" {
		t.Errorf("member profile = %+v", m.Support)
	}
}

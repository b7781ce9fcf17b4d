package auth

import (
	"context"
	"testing"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/erostest"
	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/session"
	"github.com/eros-saude/eros-go/transport"
)

func TestGatewayRegisterThenLogin(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()

	store := session.NewMemStore()
	gw := NewGatewayHTTP(transport.NewClient(srv.BaseURL(), store))
	ctx := context.Background()

	sess, err := gw.Register(ctx, RegisterPayload{
		Name:     "Ana Lima",
		Email:    "ana@eros.app",
		Password: "secret1",
		UserType: model.UserTypePregnant,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("registration returned no token")
	}
	if sess.User.ShareCode == "" {
		t.Errorf("pregnant registration issued no share code")
	}

	again, err := gw.Login(ctx, "ana@eros.app", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.User.ID != sess.User.ID {
		t.Errorf("login returned user %q, registered %q", again.User.ID, sess.User.ID)
	}
	if again.User.ShareCode != sess.User.ShareCode {
		t.Errorf("share code changed across login: %q vs %q", again.User.ShareCode, sess.User.ShareCode)
	}
}

func TestGatewayLoginRejectsBadPassword(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()
	srv.SeedPregnant("Ana", "ana@eros.app", "secret1", "AAAA-1111")

	store := session.NewMemStore()
	gw := NewGatewayHTTP(transport.NewClient(srv.BaseURL(), store))

	_, err := gw.Login(context.Background(), "ana@eros.app", "nope")
	if !apierr.IsAuthorization(err) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

func TestGatewayCurrentUserRequiresToken(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()

	store := session.NewMemStore()
	gw := NewGatewayHTTP(transport.NewClient(srv.BaseURL(), store))

	if _, err := gw.CurrentUser(context.Background()); !apierr.IsAuthorization(err) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

func TestGatewayDuplicateEmailIsServerError(t *testing.T) {
	srv := erostest.New()
	defer srv.Close()
	srv.SeedPregnant("Ana", "ana@eros.app", "secret1", "AAAA-1111")

	gw := NewGatewayHTTP(transport.NewClient(srv.BaseURL(), session.NewMemStore()))
	_, err := gw.Register(context.Background(), RegisterPayload{
		Name:     "Outra Ana",
		Email:    "ana@eros.app",
		Password: "secret1",
		UserType: model.UserTypePregnant,
	})
	if !apierr.IsServer(err) {
		t.Fatalf("expected ServerError, got %v", err)
	}
}

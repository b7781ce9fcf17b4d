package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/session"
)

type mockGateway struct {
	users map[string]string // email -> password

	loginCalls    int
	registerCalls int
	lastPayload   RegisterPayload
	logoutErr     error
	current       *model.User
}

func newMockGateway() *mockGateway {
	return &mockGateway{users: map[string]string{}}
}

func (m *mockGateway) Login(_ context.Context, email, password string) (*model.AuthSession, error) {
	m.loginCalls++
	if pw, ok := m.users[email]; !ok || pw != password {
		return nil, &apierr.AuthorizationError{Status: 401}
	}
	return &model.AuthSession{
		User:  &model.User{ID: "u-" + email, Email: email, UserType: model.UserTypePregnant},
		Token: "tok-" + email,
	}, nil
}

func (m *mockGateway) Register(_ context.Context, payload RegisterPayload) (*model.AuthSession, error) {
	m.registerCalls++
	m.lastPayload = payload
	m.users[payload.Email] = payload.Password
	return &model.AuthSession{
		User:  &model.User{ID: "u-new", Email: payload.Email, UserType: payload.UserType},
		Token: "tok-new",
	}, nil
}

func (m *mockGateway) Logout(context.Context) error { return m.logoutErr }

func (m *mockGateway) CurrentUser(context.Context) (*model.User, error) {
	if m.current == nil {
		return nil, &apierr.AuthorizationError{Status: 401}
	}
	return m.current, nil
}

func newTestService(gw Gateway) (*Service, *session.MemStore) {
	store := session.NewMemStore()
	return NewService(gw, store, zerolog.Nop()), store
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(gw)

	cases := []struct{ email, password, field string }{
		{"", "secret1", "email"},
		{"ana@eros.app", "", "password"},
	}
	for _, tc := range cases {
		_, err := svc.Login(context.Background(), tc.email, tc.password)
		var ve *apierr.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Errorf("Login(%q, %q) = %v, want validation on %s", tc.email, tc.password, err, tc.field)
		}
	}
	if gw.loginCalls != 0 {
		t.Errorf("validation failures reached the gateway %d times", gw.loginCalls)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	gw := newMockGateway()
	gw.users["ana@eros.app"] = "secret1"
	svc, store := newTestService(gw)

	sess, err := svc.Login(context.Background(), "ana@eros.app", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok, ok := store.Token()
	if !ok || tok != sess.Token {
		t.Errorf("stored token = %q, %v", tok, ok)
	}
	u, ok := store.User()
	if !ok || u.Email != "ana@eros.app" {
		t.Errorf("stored user = %+v, %v", u, ok)
	}
}

func TestLoginBadCredentialsLeaveStoreEmpty(t *testing.T) {
	gw := newMockGateway()
	svc, store := newTestService(gw)

	_, err := svc.Login(context.Background(), "ana@eros.app", "wrong")
	if !apierr.IsAuthorization(err) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Errorf("failed login persisted a token")
	}
}

func TestRegisterEnforcesPasswordRules(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(gw)

	base := RegisterInput{Name: "Ana", Email: "ana@eros.app"}

	short := base
	short.Password, short.ConfirmPassword = "abc", "abc"
	if _, err := svc.Register(context.Background(), short); !apierr.IsValidation(err) {
		t.Errorf("short password: got %v", err)
	}

	mismatch := base
	mismatch.Password, mismatch.ConfirmPassword = "secret1", "secret2"
	if _, err := svc.Register(context.Background(), mismatch); !apierr.IsValidation(err) {
		t.Errorf("mismatched confirmation: got %v", err)
	}

	if gw.registerCalls != 0 {
		t.Errorf("invalid input reached the gateway")
	}
}

func TestRegisterAlwaysCreatesPregnantAccount(t *testing.T) {
	gw := newMockGateway()
	svc, store := newTestService(gw)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:            "Ana",
		Email:           "ana@eros.app",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		PregnantWeeks:   20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastPayload.UserType != model.UserTypePregnant {
		t.Errorf("payload userType = %q", gw.lastPayload.UserType)
	}
	if _, ok := store.Token(); !ok {
		t.Errorf("registration did not persist the session")
	}
}

func TestLogoutClearsStoreEvenWhenCallFails(t *testing.T) {
	gw := newMockGateway()
	gw.logoutErr = &apierr.NetworkError{Err: errors.New("offline")}
	svc, store := newTestService(gw)
	store.SetToken("tok")
	store.SetUser(&model.User{ID: "u1"})

	err := svc.Logout(context.Background())
	if !apierr.IsNetwork(err) {
		t.Fatalf("expected the call error back, got %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Errorf("token survived logout")
	}
	if _, ok := store.User(); ok {
		t.Errorf("user survived logout")
	}
}

func TestCurrentUserRefreshesCache(t *testing.T) {
	gw := newMockGateway()
	gw.current = &model.User{ID: "u1", Name: "Ana Atualizada"}
	svc, store := newTestService(gw)
	store.SetUser(&model.User{ID: "u1", Name: "Ana"})

	u, err := svc.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != "Ana Atualizada" {
		t.Errorf("refreshed name = %q", u.Name)
	}
	cached, _ := store.User()
	if cached.Name != "Ana Atualizada" {
		t.Errorf("cache not updated, still %q", cached.Name)
	}
}

// Package auth handles onboarding and session lifecycle for pregnant users.
// Support-network onboarding lives in supportlink, which carries the
// share-code redemption flow.
package auth

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/session"
)

// MinPasswordLen mirrors the backend's minimum.
const MinPasswordLen = 6

type Service struct {
	gw    Gateway
	store session.Store
	log   zerolog.Logger
}

func NewService(gw Gateway, store session.Store, log zerolog.Logger) *Service {
	return &Service{gw: gw, store: store, log: log}
}

// RegisterInput collects the pregnant-onboarding form.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	PregnantWeeks   int
	DueDate         string
}

// ValidatePassword applies the shared password rules. Both registration
// flows use it so the rules cannot drift apart.
func ValidatePassword(password, confirm string) error {
	if password == "" {
		return apierr.NewValidation("password", "is required")
	}
	if len(password) < MinPasswordLen {
		return apierr.NewValidation("password", "must be at least 6 characters")
	}
	if password != confirm {
		return apierr.NewValidation("confirmPassword", "passwords do not match")
	}
	return nil
}

// Login authenticates and persists the session. Field checks never reach
// the network.
func (s *Service) Login(ctx context.Context, email, password string) (*model.AuthSession, error) {
	if email == "" {
		return nil, apierr.NewValidation("email", "is required")
	}
	if password == "" {
		return nil, apierr.NewValidation("password", "is required")
	}

	sess, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.persist(sess); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", sess.User.ID).Msg("logged in")
	return sess, nil
}

// Register creates a pregnant account and persists the session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.AuthSession, error) {
	if in.Name == "" {
		return nil, apierr.NewValidation("name", "is required")
	}
	if in.Email == "" {
		return nil, apierr.NewValidation("email", "is required")
	}
	if err := ValidatePassword(in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	sess, err := s.gw.Register(ctx, RegisterPayload{
		Name:          in.Name,
		Email:         in.Email,
		Password:      in.Password,
		Phone:         in.Phone,
		UserType:      model.UserTypePregnant,
		PregnantWeeks: in.PregnantWeeks,
		DueDate:       in.DueDate,
	})
	if err != nil {
		return nil, err
	}
	if err := s.persist(sess); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", sess.User.ID).Msg("registered pregnant user")
	return sess, nil
}

// Logout tells the backend, then clears the local session. The local
// session must not outlive an explicit logout, so the store is cleared even
// when the call fails.
func (s *Service) Logout(ctx context.Context) error {
	callErr := s.gw.Logout(ctx)
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.log.Info().Msg("logged out")
	return callErr
}

// CurrentUser refreshes the profile from the backend and updates the cache.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	u, err := s.gw.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// CachedUser returns the locally cached profile without a network call.
func (s *Service) CachedUser() (*model.User, bool) {
	return s.store.User()
}

func (s *Service) persist(sess *model.AuthSession) error {
	if err := s.store.SetToken(sess.Token); err != nil {
		return err
	}
	return s.store.SetUser(sess.User)
}

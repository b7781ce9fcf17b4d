package supportlink

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/auth"
	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/session"
)

// Step is a position in the redemption flow.
type Step int

const (
	// StepCode collects the share code and the relationship to the pregnant
	// user.
	StepCode Step = iota
	// StepIdentity collects the new account's identity and credentials.
	StepIdentity
	// StepDone means the account exists and the session is persisted.
	StepDone
)

// ErrWrongStep is returned when a call does not match the flow's current
// position.
var ErrWrongStep = errors.New("supportlink: call does not match current step")

// Identity collects the second-step form fields.
type Identity struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
}

// Redemption is the two-step support-network onboarding flow. The code and
// relationship are captured first so a bad code is caught before the user
// types a full profile; when the backend still rejects the code at submit
// time, the flow returns to the code step with the identity fields intact.
type Redemption struct {
	gw    Gateway
	store session.Store
	log   zerolog.Logger

	step         Step
	code         string
	relationship string
	identity     Identity
}

func NewRedemption(gw Gateway, store session.Store, log zerolog.Logger) *Redemption {
	return &Redemption{gw: gw, store: store, log: log, step: StepCode}
}

func (r *Redemption) Step() Step { return r.step }

// Code returns the captured share code, normalized.
func (r *Redemption) Code() string { return r.code }

// Identity returns the captured identity fields. They survive a rollback to
// the code step.
func (r *Redemption) Identity() Identity { return r.identity }

// EnterCode captures the share code and relationship and advances to the
// identity step. Codes are case-insensitive on entry and normalized to
// uppercase.
func (r *Redemption) EnterCode(code, relationship string) error {
	if r.step != StepCode {
		return ErrWrongStep
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	relationship = strings.TrimSpace(relationship)
	if code == "" {
		return apierr.NewValidation("shareCode", "is required")
	}
	if relationship == "" {
		return apierr.NewValidation("relationship", "is required")
	}
	r.code = code
	r.relationship = relationship
	r.step = StepIdentity
	return nil
}

// Back returns from the identity step to the code step without losing
// anything already typed.
func (r *Redemption) Back() error {
	if r.step != StepIdentity {
		return ErrWrongStep
	}
	r.step = StepCode
	return nil
}

// EnterIdentity captures the identity fields. The same password rules as
// pregnant registration apply. The flow stays on the identity step; Submit
// performs the registration.
func (r *Redemption) EnterIdentity(id Identity) error {
	if r.step != StepIdentity {
		return ErrWrongStep
	}
	if id.Name == "" {
		return apierr.NewValidation("name", "is required")
	}
	if id.Email == "" {
		return apierr.NewValidation("email", "is required")
	}
	if err := auth.ValidatePassword(id.Password, id.ConfirmPassword); err != nil {
		return err
	}
	r.identity = id
	return nil
}

// Submit registers the support-network account and persists the session. An
// invalid share code rolls the flow back to the code step, keeping the
// identity fields, and returns the typed error for the caller to surface.
func (r *Redemption) Submit(ctx context.Context) (*model.AuthSession, error) {
	if r.step != StepIdentity {
		return nil, ErrWrongStep
	}
	if r.identity.Name == "" {
		return nil, apierr.NewValidation("name", "identity has not been entered")
	}

	sess, err := r.gw.Redeem(ctx, RedeemPayload{
		Name:         r.identity.Name,
		Email:        r.identity.Email,
		Password:     r.identity.Password,
		Phone:        r.identity.Phone,
		UserType:     model.UserTypeSupportNetwork,
		ShareCode:    r.code,
		Relationship: r.relationship,
	})
	if err != nil {
		if apierr.IsInvalidCode(err) {
			r.step = StepCode
			r.log.Warn().Str("share_code", r.code).Msg("share code rejected at submit")
		}
		return nil, err
	}

	if err := r.store.SetToken(sess.Token); err != nil {
		return nil, err
	}
	if err := r.store.SetUser(sess.User); err != nil {
		return nil, err
	}
	r.step = StepDone
	r.log.Info().Str("user_id", sess.User.ID).Msg("support-network account created")
	return sess, nil
}

package auth

import (
	"context"

	"github.com/eros-saude/eros-go/model"
)

// RegisterPayload is the wire shape of POST /auth/register.
type RegisterPayload struct {
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Password      string         `json:"password"`
	Phone         string         `json:"phone,omitempty"`
	UserType      model.UserType `json:"userType"`
	PregnantWeeks int            `json:"pregnantWeeks,omitempty"`
	DueDate       string         `json:"dueDate,omitempty"`
}

type Gateway interface {
	Login(ctx context.Context, email, password string) (*model.AuthSession, error)
	Register(ctx context.Context, payload RegisterPayload) (*model.AuthSession, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.User, error)
}

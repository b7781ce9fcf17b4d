// Package supportlink implements the share-code side of the support network:
// issuing a pregnant user's code, redeeming one during support-network
// onboarding, and listing the resulting network.
package supportlink

import (
	"context"

	"github.com/eros-saude/eros-go/model"
)

// RedeemPayload is the wire shape of a support-network registration. It is
// the standard registration payload plus the code being redeemed and the
// declared relationship.
type RedeemPayload struct {
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Phone        string         `json:"phone,omitempty"`
	UserType     model.UserType `json:"userType"`
	ShareCode    string         `json:"shareCode"`
	Relationship string         `json:"relationship"`
}

type Gateway interface {
	// Redeem registers a support-network account against a share code. An
	// unknown code yields *apierr.InvalidCodeError.
	Redeem(ctx context.Context, payload RedeemPayload) (*model.AuthSession, error)
	CurrentUser(ctx context.Context) (*model.User, error)
}

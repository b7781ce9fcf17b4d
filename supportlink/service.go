package supportlink

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/model"
)

type Service struct {
	gw  Gateway
	log zerolog.Logger
}

func NewService(gw Gateway, log zerolog.Logger) *Service {
	return &Service{gw: gw, log: log}
}

// ShareCode returns the authenticated pregnant user's share code. The code
// is issued by the backend at registration and never changes; this is a
// read, not a mint. Support-network accounts have no code to share.
func (s *Service) ShareCode(ctx context.Context) (string, error) {
	u, err := s.gw.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if u.UserType != model.UserTypePregnant {
		return "", apierr.NewValidation("userType", "only pregnant users have a share code")
	}
	return u.ShareCode, nil
}

// Network lists the pregnant user's support-network members, oldest link
// first.
func (s *Service) Network(ctx context.Context) ([]*model.SupportNetworkMember, error) {
	u, err := s.gw.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.UserType != model.UserTypePregnant {
		return nil, apierr.NewValidation("userType", "only pregnant users have a support network")
	}
	members := append([]*model.SupportNetworkMember(nil), u.SupportNetwork...)
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].CreatedAt.Before(members[j].CreatedAt)
	})
	return members, nil
}

// SupportedPregnant returns the pregnant user a support-network account
// follows, or a validation error for pregnant accounts.
func (s *Service) SupportedPregnant(ctx context.Context) (*model.SupportLink, error) {
	u, err := s.gw.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.UserType != model.UserTypeSupportNetwork {
		return nil, apierr.NewValidation("userType", "account is not a support-network member")
	}
	return u.SupportingPregnant, nil
}

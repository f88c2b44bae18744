package rpc

import (
	"context"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

// SiteService serves the rest of the public site: roster, about cards and background.
type SiteService struct {
	zenrpc.Service
	manager *newsportal.Manager
}

func NewSiteService(manager *newsportal.Manager) *SiteService {
	return &SiteService{manager: manager}
}

// Members returns active members in display order.
//
//zenrpc:return active members
//zenrpc:500 internal server error
func (s *SiteService) Members(ctx context.Context) ([]Member, error) {
	list, err := s.manager.ActiveMembers(ctx)
	if err != nil {
		return nil, newError(err)
	}

	return newList(list, NewMember), nil
}

// Roles returns the configured member roles.
//
//zenrpc:return role names
func (s *SiteService) Roles(ctx context.Context) ([]string, error) {
	return s.manager.MemberRoles(), nil
}

// AboutCards returns about cards in display order.
//
//zenrpc:return about cards
//zenrpc:500 internal server error
func (s *SiteService) AboutCards(ctx context.Context) ([]AboutCard, error) {
	list, err := s.manager.AboutCards(ctx)
	if err != nil {
		return nil, newError(err)
	}

	return newList(list, NewAboutCard), nil
}

// Background returns the site background settings with defaults applied.
//
//zenrpc:return background settings
//zenrpc:500 internal server error
func (s *SiteService) Background(ctx context.Context) (Background, error) {
	b, err := s.manager.Background(ctx)
	if err != nil {
		return Background{}, newError(err)
	}

	return NewBackground(b), nil
}

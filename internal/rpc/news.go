package rpc

import (
	"context"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

//go:generate zenrpc

// NewsService exposes the public news feed over JSON-RPC.
type NewsService struct {
	zenrpc.Service
	manager *newsportal.Manager
}

func NewNewsService(manager *newsportal.Manager) *NewsService {
	return &NewsService{manager: manager}
}

// List returns published news in display order, without content.
//
//zenrpc:filter limit, page and authorId filters
//zenrpc:return page of news summaries
//zenrpc:400 invalid filter
//zenrpc:500 internal server error
func (s *NewsService) List(ctx context.Context, filter NewsFilter) (NewsList, error) {
	if filter.Limit != nil && *filter.Limit < 0 {
		return NewsList{}, zenrpc.NewStringError(400, "limit must not be negative")
	}

	page, err := s.manager.PublishedNews(ctx, filter.ToSearch())
	if err != nil {
		return NewsList{}, newError(err)
	}

	return NewNewsList(page), nil
}

// ByID returns a published news item with full content.
//
//zenrpc:id news numeric ID
//zenrpc:return news with full content
//zenrpc:400 id must be positive
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s *NewsService) ByID(ctx context.Context, id int) (*News, error) {
	if id <= 0 {
		return nil, zenrpc.NewStringError(400, "id must be positive")
	}

	n, err := s.manager.NewsByID(ctx, id)
	if err != nil {
		return nil, newError(err)
	}

	news := NewNews(*n)
	return &news, nil
}

// BySlug returns a published news item by its slug.
//
//zenrpc:slug news slug
//zenrpc:return news with full content
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s *NewsService) BySlug(ctx context.Context, slug string) (*News, error) {
	n, err := s.manager.NewsBySlug(ctx, slug)
	if err != nil {
		return nil, newError(err)
	}

	news := NewNews(*n)
	return &news, nil
}

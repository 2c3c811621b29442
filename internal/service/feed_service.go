package service

import (
	"context"
	"intranet-portal/config"
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/util"
	"log"
	"sort"
)

// FeedService : собирает общую ленту из постов и видимых вызывающему событий календаря
type FeedService struct {
	postRepository  ports.PostRepository
	eventRepository ports.EventRepository
	db              *config.Database
}

func NewFeedService(
	postRepository ports.PostRepository,
	eventRepository ports.EventRepository,
	db *config.Database,
) *FeedService {
	return &FeedService{
		postRepository:  postRepository,
		eventRepository: eventRepository,
		db:              db,
	}
}

// GetFeed : посты видны всем, события — по правилам видимости календаря.
// Сортировка: created_at по убыванию, при равенстве — uuid по убыванию.
func (s *FeedService) GetFeed(ctx context.Context, caller access.Caller) ([]model.FeedItem, error) {
	posts, err := s.postRepository.ListAll(ctx, s.db)
	if err != nil {
		return nil, util.LogError("[FeedService] не удалось получить посты", err)
	}

	events, err := s.eventRepository.ListVisible(ctx, s.db, caller.UserUUID, caller.IsAdmin())
	if err != nil {
		return nil, util.LogError("[FeedService] не удалось получить события", err)
	}

	items := make([]model.FeedItem, 0, len(posts)+len(events))
	for i := range posts {
		post := posts[i]

		attachments, err := s.postRepository.ListAttachments(ctx, s.db, post.UUID)
		if err != nil {
			log.Printf("[FeedService] не удалось получить вложения поста %s: %v", post.UUID, err)
		} else {
			post.Attachments = attachments
		}

		items = append(items, model.FeedItem{
			Kind:      model.FeedKindPost,
			CreatedAt: post.CreatedAt,
			Post:      &post,
		})
	}
	for i := range events {
		items = append(items, model.FeedItem{
			Kind:      model.FeedKindEvent,
			CreatedAt: events[i].CreatedAt,
			Event:     &events[i],
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		if !items[a].CreatedAt.Equal(items[b].CreatedAt) {
			return items[a].CreatedAt.After(items[b].CreatedAt)
		}
		return items[a].SortKey() > items[b].SortKey()
	})

	return items, nil
}

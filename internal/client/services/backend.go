package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/witter/internal/client/api"
	"github.com/dmitrijs2005/witter/internal/client/toggle"
)

// relationBackend adapts the API client to the toggle controller's Backend.
// Follow relations are keyed by handle; the content relations by weet id.
type relationBackend struct {
	client api.Client
}

func (b *relationBackend) Activate(ctx context.Context, rel toggle.Relation, subjectID string) error {
	switch rel {
	case toggle.RelationFollow:
		return b.client.Follow(ctx, subjectID)
	case toggle.RelationReweet:
		return b.client.Reweet(ctx, subjectID)
	case toggle.RelationFavorite:
		return b.client.Favorite(ctx, subjectID)
	case toggle.RelationTab:
		return b.client.Tab(ctx, subjectID)
	}
	return fmt.Errorf("unknown relation %q", rel)
}

func (b *relationBackend) Deactivate(ctx context.Context, rel toggle.Relation, subjectID string) error {
	switch rel {
	case toggle.RelationFollow:
		return b.client.Unfollow(ctx, subjectID)
	case toggle.RelationReweet:
		return b.client.Unreweet(ctx, subjectID)
	case toggle.RelationFavorite:
		return b.client.Unfavorite(ctx, subjectID)
	case toggle.RelationTab:
		return b.client.Untab(ctx, subjectID)
	}
	return fmt.Errorf("unknown relation %q", rel)
}

package push

import (
	"context"

	"github.com/google/uuid"

	Push "github.com/apurva-sri/Bolio-chatWeb/internal/push/model"
)

type SubscriptionRepository interface {
	// UpsertSubscription replaces any previous subscription for the user.
	UpsertSubscription(ctx context.Context, sub *Push.Subscription) error
	// GetSubscription returns (nil, nil) when the user never subscribed.
	GetSubscription(ctx context.Context, userID uuid.UUID) (*Push.Subscription, error)
	DeleteSubscription(ctx context.Context, userID uuid.UUID) error
}

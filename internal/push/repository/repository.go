package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	Push "github.com/apurva-sri/Bolio-chatWeb/internal/push/model"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

type SubscriptionRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var ErrSubscriptionNotFound = errors.New("subscription not found")

func NewSubscriptionRepository(db *bun.DB, logger logger.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *SubscriptionRepository) UpsertSubscription(ctx context.Context, sub *Push.Subscription) error {

	_, err := r.db.NewInsert().
		Model(sub).
		On("CONFLICT (user_id) DO UPDATE").
		Set("endpoint = EXCLUDED.endpoint").
		Set("p256dh = EXCLUDED.p256dh").
		Set("auth = EXCLUDED.auth").
		Set("updated_at = current_timestamp").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "pushRepo.UpsertSubscription.Exec: ")
	}
	return nil
}

func (r *SubscriptionRepository) GetSubscription(ctx context.Context, userID uuid.UUID) (*Push.Subscription, error) {

	sub := new(Push.Subscription)
	err := r.db.NewSelect().Model(sub).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "pushRepo.GetSubscription.Scan: ")
	}
	return sub, nil
}

func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, userID uuid.UUID) error {

	res, err := r.db.NewDelete().
		Model((*Push.Subscription)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "pushRepo.DeleteSubscription.Exec: ")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

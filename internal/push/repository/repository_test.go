package repository

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"testing"

	Push "github.com/apurva-sri/Bolio-chatWeb/internal/push/model"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bolio"),
		postgres.WithUsername("apurva"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connections string, %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	if _, err := testDB.NewCreateTable().Model((*Push.Subscription)(nil)).IfNotExists().Exec(ctx); err != nil {
		testDB.Close()
		log.Fatalf("failed to create subscriptions table: %v", err)
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func cleanup(t *testing.T) {
	_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE subscriptions CASCADE`)
	require.NoError(t, err)
}

func Test_UpsertSubscription(t *testing.T) {
	defer cleanup(t)

	repo := NewSubscriptionRepository(testDB, logger.Logger{})
	userID := uuid.New()

	sub := &Push.Subscription{UserID: userID, Endpoint: "https://push.example/a", P256dh: "k1", Auth: "a1"}
	require.NoError(t, repo.UpsertSubscription(t.Context(), sub))

	// re-subscribing from another browser replaces, never duplicates
	replaced := &Push.Subscription{UserID: userID, Endpoint: "https://push.example/b", P256dh: "k2", Auth: "a2"}
	require.NoError(t, repo.UpsertSubscription(t.Context(), replaced))

	fetched, err := repo.GetSubscription(t.Context(), userID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "https://push.example/b", fetched.Endpoint)
	assert.Equal(t, "k2", fetched.P256dh)

	count, err := testDB.NewSelect().Model((*Push.Subscription)(nil)).Where("user_id = ?", userID).Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func Test_GetSubscription_Missing(t *testing.T) {
	repo := NewSubscriptionRepository(testDB, logger.Logger{})

	sub, err := repo.GetSubscription(t.Context(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func Test_DeleteSubscription(t *testing.T) {
	defer cleanup(t)

	repo := NewSubscriptionRepository(testDB, logger.Logger{})
	userID := uuid.New()

	sub := &Push.Subscription{UserID: userID, Endpoint: "https://push.example/a", P256dh: "k", Auth: "a"}
	require.NoError(t, repo.UpsertSubscription(t.Context(), sub))

	require.NoError(t, repo.DeleteSubscription(t.Context(), userID))
	fetched, err := repo.GetSubscription(t.Context(), userID)
	require.NoError(t, err)
	assert.Nil(t, fetched)

	// the row is gone now, a second delete reports that
	assert.ErrorIs(t, repo.DeleteSubscription(t.Context(), userID), ErrSubscriptionNotFound)
}

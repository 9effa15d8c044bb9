package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/spotbnb/internal/domain"
	"github.com/pkordes/spotbnb/internal/repo"
	"github.com/pkordes/spotbnb/testutil"
)

// newTestTx returns a rolled-back-on-cleanup transaction; TestMain has
// already applied the migrations.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// querier is what the fixture helpers write through: a test tx or, for tests
// that need committed rows, the pool itself.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mustCreateUser inserts a user with a unique email.
func mustCreateUser(t *testing.T, tx querier, first string) domain.User {
	t.Helper()
	u, err := repo.NewUserRepo(tx).Create(context.Background(),
		domain.User{FirstName: first, LastName: "Tester"},
		fmt.Sprintf("%s-%s@example.com", first, uuid.NewString()))
	require.NoError(t, err, "create user")
	return u
}

// spotFixture returns a Spot owned by ownerID. Callers override fields as needed.
func spotFixture(ownerID uuid.UUID) domain.Spot {
	return domain.Spot{
		OwnerID:     ownerID,
		Address:     "123 Disney Lane",
		City:        "San Francisco",
		State:       "California",
		Country:     "United States of America",
		Lat:         37.7645358,
		Lng:         -122.4730327,
		Name:        "App Academy",
		Description: "Place where web developers are created",
		Price:       123,
	}
}

func mustCreateSpot(t *testing.T, tx querier, s domain.Spot) domain.Spot {
	t.Helper()
	created, err := repo.NewSpotRepo(tx).Create(context.Background(), s)
	require.NoError(t, err, "create spot")
	return created
}

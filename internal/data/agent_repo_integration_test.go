package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/t1250-loader/internal/domain/model"
	apperrors "github.com/target/t1250-loader/internal/errors"
	"github.com/target/t1250-loader/internal/testutil"
)

func TestAgentRepo_Integration(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAgentRepo(db)

		created, err := repo.Create(ctx, model.CreateAgentRequest{Code: " N031 ", Name: "Newsagency 31"})
		require.NoError(t, err)
		assert.Equal(t, "N031", created.Code)
		assert.NotZero(t, created.ID)

		t.Run("lookup ignores case", func(t *testing.T) {
			got, err := repo.GetByCode(ctx, "n031")
			require.NoError(t, err)
			assert.Equal(t, *created, *got)
		})

		t.Run("missing agent", func(t *testing.T) {
			_, err := repo.GetByCode(ctx, "ZZZZ")
			require.ErrorIs(t, err, model.ErrAgentNotFound)
		})

		t.Run("duplicate code conflicts", func(t *testing.T) {
			_, err := repo.Create(ctx, model.CreateAgentRequest{Code: "n031"})
			require.Error(t, err)
			assert.True(t, apperrors.IsConflict(err))
		})
	})
}

func TestAgentRepo_CreateValidates(t *testing.T) {
	repo := NewAgentRepo(nil)
	_, err := repo.Create(context.Background(), model.CreateAgentRequest{Code: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code is required")
}

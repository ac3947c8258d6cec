package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

func TestFileTeeStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileTeeStore(dir)
	require.NoError(t, err)

	t.Run("unknown course is empty", func(t *testing.T) {
		tees, err := store.ListByCourse(ctx, "42")
		require.NoError(t, err)
		assert.Empty(t, tees)
	})

	t.Run("save and list", func(t *testing.T) {
		tee := domain.CustomTee{Name: "Combo", Yardage: intPtr(6100), AddedByUser: true}
		require.NoError(t, store.Save(ctx, "42", "Pine Hollow", tee))

		tees, err := store.ListByCourse(ctx, "42")
		require.NoError(t, err)
		require.Len(t, tees, 1)
		assert.Equal(t, tee, tees[0])
	})

	t.Run("upsert by case-insensitive name", func(t *testing.T) {
		updated := domain.CustomTee{Name: "combo", Yardage: intPtr(6150), Slope: intPtr(125), AddedByUser: true}
		require.NoError(t, store.Save(ctx, "42", "Pine Hollow", updated))

		tees, err := store.ListByCourse(ctx, "42")
		require.NoError(t, err)
		require.Len(t, tees, 1)
		assert.Equal(t, "combo", tees[0].Name)
		assert.Equal(t, 6150, *tees[0].Yardage)
		assert.Equal(t, 125, *tees[0].Slope)
	})

	t.Run("courses are isolated", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "77", "Muni South", domain.CustomTee{Name: "Gold", AddedByUser: true}))

		tees, err := store.ListByCourse(ctx, "42")
		require.NoError(t, err)
		require.Len(t, tees, 1)
		assert.Equal(t, "combo", tees[0].Name)
	})

	t.Run("survives reopen", func(t *testing.T) {
		reopened, err := NewFileTeeStore(dir)
		require.NoError(t, err)

		tees, err := reopened.ListByCourse(ctx, "77")
		require.NoError(t, err)
		require.Len(t, tees, 1)
		assert.Equal(t, "Gold", tees[0].Name)
	})
}

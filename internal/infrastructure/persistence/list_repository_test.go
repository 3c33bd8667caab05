package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/list"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

type testDescriptor struct {
	unique   string
	typeName string
}

func (d testDescriptor) UniqueIdentifier() string { return d.unique }
func (d testDescriptor) TypeIdentifier() string   { return d.typeName }
func (d testDescriptor) Kind() string             { return "test" }
func (d testDescriptor) LocalSiteID() int64       { return 1 }

// ---- List Repository Tests ----

func TestGormListRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormListRepository(db.DB)

	anyStatus := testDescriptor{unique: "woo-orders:site=1:status=any", typeName: "woo-orders:site=1"}
	processing := testDescriptor{unique: "woo-orders:site=1:status=processing", typeName: "woo-orders:site=1"}

	t.Run("GetOrCreate is idempotent", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, anyStatus)
		require.NoError(t, err)
		assert.Equal(t, list.StateNeedsRefresh, first.State)

		second, err := repo.GetOrCreate(ctx, anyStatus)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("FindByDescriptor", func(t *testing.T) {
		_, err := repo.FindByDescriptor(ctx, processing)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.GetOrCreate(ctx, processing)
		require.NoError(t, err)
		found, err := repo.FindByDescriptor(ctx, processing)
		require.NoError(t, err)
		assert.Equal(t, processing.unique, found.DescriptorUniqueID)
	})

	t.Run("FindByTypeIdentifier groups lists", func(t *testing.T) {
		lists, err := repo.FindByTypeIdentifier(ctx, "woo-orders:site=1")
		require.NoError(t, err)
		assert.Len(t, lists, 2)
	})

	t.Run("UpdateState", func(t *testing.T) {
		model, err := repo.GetOrCreate(ctx, anyStatus)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateState(ctx, model.ID, list.StateFetched))

		found, err := repo.FindByDescriptor(ctx, anyStatus)
		require.NoError(t, err)
		assert.Equal(t, list.StateFetched, found.State)

		assert.ErrorIs(t, repo.UpdateState(ctx, 9999, list.StateFetched), shared.ErrNotFound)
	})
}

func TestGormListItemRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	lists := NewGormListRepository(db.DB)
	items := NewGormListItemRepository(db.DB)

	a, err := lists.GetOrCreate(ctx, testDescriptor{unique: "a", typeName: "t"})
	require.NoError(t, err)
	b, err := lists.GetOrCreate(ctx, testDescriptor{unique: "b", typeName: "t"})
	require.NoError(t, err)

	require.NoError(t, items.InsertItems(ctx, a.ID, []int64{30, 10, 20}))
	require.NoError(t, items.InsertItems(ctx, a.ID, []int64{10, 40}))
	require.NoError(t, items.InsertItems(ctx, b.ID, []int64{10, 50}))

	t.Run("keeps insertion order without duplicates", func(t *testing.T) {
		found, err := items.FindForList(ctx, a.ID)
		require.NoError(t, err)
		ids := make([]int64, len(found))
		for i, item := range found {
			ids[i] = item.RemoteItemID
		}
		assert.Equal(t, []int64{30, 10, 20, 40}, ids)

		count, err := items.CountForList(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("DeleteFromLists removes ids from every list", func(t *testing.T) {
		removed, err := items.DeleteFromLists(ctx, []int64{a.ID, b.ID}, []int64{10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		removed, err = items.DeleteFromLists(ctx, nil, []int64{10})
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("DeleteForList", func(t *testing.T) {
		require.NoError(t, items.DeleteForList(ctx, a.ID))
		count, err := items.CountForList(ctx, a.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		count, err = items.CountForList(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

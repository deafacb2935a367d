package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResourceStoreContract runs a suite of tests to verify that a ResourceStore
// implementation adheres to the defined interface contract.
func RunResourceStoreContract(t *testing.T, store ResourceStore) {
	ctx := context.Background()
	kind := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := domain.NewRecord(kind, "1", map[string]any{
			"title": "Hello",
			"count": 42,
			"tags":  []any{"a", "b"},
		})

		err := store.Save(ctx, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, kind, "1")
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, kind, loaded.Kind)
		assert.Equal(t, "1", loaded.ID)
		assert.Equal(t, "Hello", loaded.Attributes["title"])
		assert.Equal(t, "42", fmt.Sprint(loaded.Attributes["count"]))
		assert.Nil(t, loaded.Transitions(), "stored records must come back unbound")
	})

	t.Run("Large integers survive", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewRecord(kind, "big", map[string]any{"ref": int64(9007199254740993)})))

		loaded, err := store.Load(ctx, kind, "big")
		require.NoError(t, err)
		assert.Equal(t, "9007199254740993", fmt.Sprint(loaded.Attributes["ref"]))
	})

	t.Run("Load returns an independent copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewRecord(kind, "copy", map[string]any{"state": "draft"})))

		first, err := store.Load(ctx, kind, "copy")
		require.NoError(t, err)
		first.Attributes["state"] = "mutated"

		second, err := store.Load(ctx, kind, "copy")
		require.NoError(t, err)
		assert.Equal(t, "draft", second.Attributes["state"])
	})

	t.Run("Save overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewRecord(kind, "over", map[string]any{"v": "old"})))
		require.NoError(t, store.Save(ctx, domain.NewRecord(kind, "over", map[string]any{"v": "new"})))

		loaded, err := store.Load(ctx, kind, "over")
		require.NoError(t, err)
		assert.Equal(t, "new", loaded.Attributes["v"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, kind, "non-existent")
		assert.ErrorIs(t, err, domain.ErrResourceNotFound)

		_, err = store.Load(ctx, kind+"-other", "1")
		assert.ErrorIs(t, err, domain.ErrResourceNotFound, "ids are scoped by kind")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewRecord(kind, "gone", nil)))

		err := store.Delete(ctx, kind, "gone")
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, kind, "gone")
		assert.ErrorIs(t, err, domain.ErrResourceNotFound, "Load after Delete should return ErrResourceNotFound")

		assert.NoError(t, store.Delete(ctx, kind, "gone"), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		listKind := kind + "-list"
		_ = store.Save(ctx, domain.NewRecord(listKind, "b", nil))
		_ = store.Save(ctx, domain.NewRecord(listKind, "a", nil))
		_ = store.Save(ctx, domain.NewRecord(kind+"-noise", "z", nil))

		defer func() {
			_ = store.Delete(ctx, listKind, "a")
			_ = store.Delete(ctx, listKind, "b")
			_ = store.Delete(ctx, kind+"-noise", "z")
		}()

		ids, err := store.List(ctx, listKind)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids)

		empty, err := store.List(ctx, kind+"-empty")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Invalid record", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, nil))
		assert.Error(t, store.Save(ctx, domain.NewRecord("", "1", nil)))
		assert.Error(t, store.Save(ctx, domain.NewRecord(kind, "", nil)))
	})
}

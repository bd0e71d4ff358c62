package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/confcheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSourceContract runs a suite of tests to verify that a DocumentStore implementation
// adheres to the defined interface contract.
func RunSourceContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Put and Read", func(t *testing.T) {
		content := "# seeded\nendpoint = localhost:3000\n\ndsn = a=b\n"

		err := store.Put(ctx, name+".conf", content)
		require.NoError(t, err, "Put should not return error")

		loaded, err := store.Read(ctx, name+".conf")
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, content, loaded, "content must round-trip byte for byte")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, name+".over", "a = 1"))
		require.NoError(t, store.Put(ctx, name+".over", "a = 2"))

		loaded, err := store.Read(ctx, name+".over")
		require.NoError(t, err)
		assert.Equal(t, "a = 2", loaded)
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := store.Read(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1.schema"
		id2 := name + "-2.schema"
		require.NoError(t, store.Put(ctx, id1, "a = string"))
		require.NoError(t, store.Put(ctx, id2, "b = bool"))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names, "List must be sorted")
	})

	t.Run("Delete", func(t *testing.T) {
		id := name + ".gone"
		require.NoError(t, store.Put(ctx, id, "a = 1"))
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Read(ctx, id)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, id)

		assert.NoError(t, store.Delete(ctx, id), "deleting a missing document is not an error")
	})
}

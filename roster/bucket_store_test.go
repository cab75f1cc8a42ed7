package roster

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/evergreen-ci/pail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudikone/TestExamples/model"
	"github.com/rudikone/TestExamples/testutils"
)

func newTestBucket(t *testing.T) pail.Bucket {
	bucket, err := pail.NewLocalBucket(pail.LocalOptions{Path: t.TempDir(), Prefix: "roster"})
	require.NoError(t, err)
	return bucket
}

func TestNewBucketStore(t *testing.T) {
	store, err := NewBucketStore(nil)
	assert.Error(t, err)
	assert.Nil(t, store)

	store, err = NewBucketStore(newTestBucket(t))
	assert.NoError(t, err)
	assert.NotNil(t, store)
}

func TestBucketStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := testutils.NewGenerator(0)

	t.Run("PutAndGet", func(t *testing.T) {
		store, err := NewBucketStore(newTestBucket(t))
		require.NoError(t, err)

		c := g.Character()
		require.NoError(t, store.Put(ctx, c))

		found, err := store.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, found)
	})
	t.Run("PutReplaces", func(t *testing.T) {
		store, err := NewBucketStore(newTestBucket(t))
		require.NoError(t, err)

		c := g.Character(testutils.WithAge(10))
		require.NoError(t, store.Put(ctx, c))
		c.Age = 11
		require.NoError(t, store.Put(ctx, c))

		found, err := store.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 11, found.Age)

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
	t.Run("PutRequiresID", func(t *testing.T) {
		store, err := NewBucketStore(newTestBucket(t))
		require.NoError(t, err)
		assert.Error(t, store.Put(ctx, g.Character(testutils.WithoutID())))
	})
	t.Run("RejectsPathKeys", func(t *testing.T) {
		dir := t.TempDir()
		bucketDir := filepath.Join(dir, "bucket")
		require.NoError(t, os.MkdirAll(bucketDir, 0700))
		bucket, err := pail.NewLocalBucket(pail.LocalOptions{Path: bucketDir})
		require.NoError(t, err)
		store, err := NewBucketStore(bucket)
		require.NoError(t, err)

		for _, id := range []string{"../outside", "a/b", `a\b`, ".."} {
			assert.Error(t, store.Put(ctx, g.Character(testutils.WithID(id))), id)

			_, err = store.Get(ctx, id)
			assert.True(t, IsNotFound(err), id)
			assert.True(t, IsNotFound(store.Delete(ctx, id)), id)
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "bucket", entries[0].Name())

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
	t.Run("GetMissing", func(t *testing.T) {
		store, err := NewBucketStore(newTestBucket(t))
		require.NoError(t, err)

		_, err = store.Get(ctx, "DNE")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "DNE")
	})
	t.Run("GetCorrupt", func(t *testing.T) {
		bucket := newTestBucket(t)
		store, err := NewBucketStore(bucket)
		require.NoError(t, err)
		require.NoError(t, bucket.Put(ctx, "corrupt", bytes.NewReader([]byte("{not json"))))

		_, err = store.Get(ctx, "corrupt")
		require.Error(t, err)
		assert.False(t, IsNotFound(err))

		_, err = store.List(ctx)
		assert.Error(t, err)
	})
	t.Run("Delete", func(t *testing.T) {
		store, err := NewBucketStore(newTestBucket(t))
		require.NoError(t, err)

		c := g.Character()
		require.NoError(t, store.Put(ctx, c))
		require.NoError(t, store.Delete(ctx, c.ID))

		_, err = store.Get(ctx, c.ID)
		assert.True(t, IsNotFound(err))

		err = store.Delete(ctx, c.ID)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
	t.Run("List", func(t *testing.T) {
		store, err := NewBucketStore(newTestBucket(t))
		require.NoError(t, err)

		empty, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		f := g.Fellowship(12)
		for _, c := range f {
			require.NoError(t, store.Put(ctx, c))
		}

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, f, all)
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(model.ValidateAge(-1)))
}

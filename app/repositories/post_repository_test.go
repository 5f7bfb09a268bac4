package repositories

import (
	"context"
	"testing"

	"postboard/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).Posts()

	t.Run("empty list", func(t *testing.T) {
		posts, err := repo.Find(ctx)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("insert and find post", func(t *testing.T) {
		input := &models.Post{Title: "Hello", Contents: "World"}
		id, err := repo.Insert(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 1, id)
		assert.Zero(t, input.ID, "insert only reports the id")

		post, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, &models.Post{ID: 1, Title: "Hello", Contents: "World"}, post)
	})

	t.Run("find unknown post", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 404)
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("update post", func(t *testing.T) {
		count, err := repo.Update(ctx, 1, &models.Post{ID: 55, Title: "Updated", Contents: "Contents"})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		post, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, post.ID)
		assert.Equal(t, "Updated", post.Title)
		assert.Equal(t, "Contents", post.Contents)
	})

	t.Run("update unknown post", func(t *testing.T) {
		count, err := repo.Update(ctx, 404, &models.Post{Title: "x", Contents: "y"})
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		_, err = repo.FindByID(ctx, 404)
		assert.Equal(t, ErrNotFound, err, "update must not create rows")
	})

	t.Run("list keeps id order", func(t *testing.T) {
		for i := 0; i < 11; i++ {
			_, err := repo.Insert(ctx, &models.Post{Title: "List", Contents: "Post"})
			require.NoError(t, err)
		}

		posts, err := repo.Find(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 12)
		for i, post := range posts {
			assert.Equal(t, i+1, post.ID)
		}
	})

	t.Run("remove post", func(t *testing.T) {
		count, err := repo.Remove(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		_, err = repo.FindByID(ctx, 1)
		assert.Equal(t, ErrNotFound, err)

		count, err = repo.Remove(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("ids are not reused", func(t *testing.T) {
		id, err := repo.Insert(ctx, &models.Post{Title: "After", Contents: "Delete"})
		require.NoError(t, err)
		assert.Equal(t, 13, id)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.Find(cctx)
		assert.ErrorIs(t, err, context.Canceled)
		_, err = repo.Insert(cctx, &models.Post{Title: "x", Contents: "y"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

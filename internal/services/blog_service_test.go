package services

import (
	"context"
	"testing"
	"time"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postInsert(title string, published bool) *models.BlogPostInsert {
	return &models.BlogPostInsert{
		Title:     title,
		Content:   "Body of " + title,
		Summary:   "Summary of " + title,
		Published: published,
	}
}

func TestPublishedListingNeverLeaksDrafts(t *testing.T) {
	repo := newFakeBlogRepo()
	bs := NewBlogService(repo)

	_, err := bs.CreatePost(context.Background(), postInsert("Live One", true))
	require.NoError(t, err)
	_, err = bs.CreatePost(context.Background(), postInsert("Draft", false))
	require.NoError(t, err)
	_, err = bs.CreatePost(context.Background(), postInsert("Live Two", true))
	require.NoError(t, err)

	public, err := bs.ListPublishedPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, public, 2)
	for _, post := range public {
		assert.True(t, post.Published)
	}
	// Newest first.
	assert.Equal(t, "Live Two", public[0].Title)
	assert.Equal(t, "Live One", public[1].Title)

	all, err := bs.ListAllPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetPostHidesDraftPublicly(t *testing.T) {
	repo := newFakeBlogRepo()
	bs := NewBlogService(repo)

	draft, err := bs.CreatePost(context.Background(), postInsert("Draft", false))
	require.NoError(t, err)

	post, err := bs.GetPost(context.Background(), draft.ID, false)
	require.NoError(t, err)
	assert.Nil(t, post, "a draft reads as missing on the public path")

	post, err = bs.GetPost(context.Background(), draft.ID, true)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Draft", post.Title)
}

func TestGetPostMissing(t *testing.T) {
	bs := NewBlogService(newFakeBlogRepo())

	post, err := bs.GetPost(context.Background(), 42, true)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestCreatePostValidation(t *testing.T) {
	bs := NewBlogService(newFakeBlogRepo())

	_, err := bs.CreatePost(context.Background(), &models.BlogPostInsert{Title: "No Body"})
	assert.Error(t, err)
}

func TestUpdatePostStampsAndPublishes(t *testing.T) {
	repo := newFakeBlogRepo()
	bs := NewBlogService(repo)

	draft, err := bs.CreatePost(context.Background(), postInsert("Draft", false))
	require.NoError(t, err)
	before := draft.UpdatedAt
	time.Sleep(5 * time.Millisecond)

	updated, err := bs.UpdatePost(context.Background(), draft.ID, map[string]interface{}{
		"published": true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Published)
	assert.True(t, updated.UpdatedAt.After(before))

	_, err = bs.UpdatePost(context.Background(), 42, map[string]interface{}{"title": "Ghost"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	repo := newFakeBlogRepo()
	bs := NewBlogService(repo)

	post, err := bs.CreatePost(context.Background(), postInsert("Gone Soon", true))
	require.NoError(t, err)

	require.NoError(t, bs.DeletePost(context.Background(), post.ID))
	assert.ErrorIs(t, bs.DeletePost(context.Background(), post.ID), models.ErrNotFound)
}

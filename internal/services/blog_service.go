package services

import (
	"context"
	"fmt"
	"time"

	"github.com/PropertyIntelLTD/property-intel-server/internal/connect"
	"github.com/PropertyIntelLTD/property-intel-server/internal/helpers"
	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
)

type BlogService struct {
	blogRepo models.BlogRepo
}

func NewBlogService(blogRepo models.BlogRepo) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
	}
}

func (bs *BlogService) CreatePost(ctx context.Context, insert *models.BlogPostInsert) (*models.BlogPost, error) {
	if err := models.Validate.Struct(insert); err != nil {
		return nil, fmt.Errorf("%w: blog post data: %v", models.ErrInvalidInput, err)
	}

	if insert.ImageURL != "" && !isHostedURL(insert.ImageURL) {
		url, err := helpers.UploadImage(ctx, connect.Cld, insert.ImageURL, helpers.BlogFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload blog image: %v", err)
		}
		insert.ImageURL = url
	}

	return bs.blogRepo.CreatePost(ctx, insert)
}

// GetPost returns the post, or nil when it does not exist. Draft
// posts are only returned when includeDrafts is set; the public page
// treats a draft the same as a missing row.
func (bs *BlogService) GetPost(ctx context.Context, id int64, includeDrafts bool) (*models.BlogPost, error) {
	post, err := bs.blogRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post != nil && !post.Published && !includeDrafts {
		return nil, nil
	}
	return post, nil
}

// ListPublishedPosts is the public listing: published rows only,
// newest first.
func (bs *BlogService) ListPublishedPosts(ctx context.Context) ([]*models.BlogPost, error) {
	return bs.blogRepo.ListPosts(ctx, map[string]string{"published": "true"})
}

// ListAllPosts is the management listing, drafts included.
func (bs *BlogService) ListAllPosts(ctx context.Context) ([]*models.BlogPost, error) {
	return bs.blogRepo.ListPosts(ctx, nil)
}

func (bs *BlogService) UpdatePost(ctx context.Context, id int64, fields map[string]interface{}) (*models.BlogPost, error) {
	if img, ok := fields["image_url"].(string); ok && img != "" && !isHostedURL(img) {
		url, err := helpers.UploadImage(ctx, connect.Cld, img, helpers.BlogFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload blog image: %v", err)
		}
		fields["image_url"] = url
	}

	fields["updated_at"] = time.Now()
	return bs.blogRepo.UpdatePost(ctx, id, fields)
}

func (bs *BlogService) DeletePost(ctx context.Context, id int64) error {
	return bs.blogRepo.DeletePost(ctx, id)
}

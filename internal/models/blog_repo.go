package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/supabase-community/postgrest-go"
)

const blogColumns = "*, author:users!author_id(id,name,email,avatar_url,role)"

type BlogRepo interface {
	CreatePost(ctx context.Context, insert *BlogPostInsert) (*BlogPost, error)
	GetPostByID(ctx context.Context, id int64) (*BlogPost, error)
	ListPosts(ctx context.Context, filter map[string]string) ([]*BlogPost, error)
	UpdatePost(ctx context.Context, id int64, fields map[string]interface{}) (*BlogPost, error)
	DeletePost(ctx context.Context, id int64) error
}

func (su *SupabaseRepo) CreatePost(ctx context.Context, insert *BlogPostInsert) (*BlogPost, error) {
	raw, count, err := su.supabaseClient.
		From(BlogPostsTable).
		Insert(insert, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, TranslateRestError("create blog post", 0, err)
	}

	var posts []BlogPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created blog post: %v", err)
	}
	if count == 0 || len(posts) == 0 {
		return nil, fmt.Errorf("no blog post data returned after insert")
	}

	return &posts[0], nil
}

// GetPostByID returns (nil, nil) when no row exists.
func (su *SupabaseRepo) GetPostByID(ctx context.Context, id int64) (*BlogPost, error) {
	raw, _, err := su.supabaseClient.
		From(BlogPostsTable).
		Select(blogColumns, "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Single().
		Execute()
	if err != nil {
		if IsSingleRowNotFound(err) {
			return nil, nil
		}
		return nil, TranslateRestError("get blog post", 0, err)
	}

	post := &BlogPost{}
	if err := json.Unmarshal(raw, post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blog post row: %v", err)
	}

	return post, nil
}

// ListPosts returns posts matching the equality filter, newest first.
// The public listing passes {"published": "true"} so drafts never
// leave the management surface.
func (su *SupabaseRepo) ListPosts(ctx context.Context, filter map[string]string) ([]*BlogPost, error) {
	query := su.supabaseClient.From(BlogPostsTable).Select(blogColumns, "exact", false)
	for column, value := range filter {
		query = query.Eq(column, value)
	}

	raw, count, err := query.Order("created_at", &postgrest.OrderOpts{Ascending: false}).Execute()
	if err != nil {
		return nil, TranslateRestError("list blog posts", 0, err)
	}
	if count == 0 {
		return []*BlogPost{}, nil
	}

	var posts []*BlogPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blog post rows: %v", err)
	}

	return posts, nil
}

func (su *SupabaseRepo) UpdatePost(ctx context.Context, id int64, fields map[string]interface{}) (*BlogPost, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	raw, count, err := su.supabaseClient.
		From(BlogPostsTable).
		Update(fields, "", "exact").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return nil, TranslateRestError("update blog post", 0, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("update blog post %d: %w", id, ErrNotFound)
	}

	var posts []BlogPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated blog post: %v", err)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("no blog post data returned after update")
	}

	return &posts[0], nil
}

func (su *SupabaseRepo) DeletePost(ctx context.Context, id int64) error {
	_, count, err := su.supabaseClient.
		From(BlogPostsTable).
		Delete("", "exact").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return TranslateRestError("delete blog post", 0, err)
	}
	if count == 0 {
		return fmt.Errorf("delete blog post %d: %w", id, ErrNotFound)
	}

	return nil
}

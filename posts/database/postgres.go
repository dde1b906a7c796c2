package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/chimera-ai/functions/posts"
	"github.com/chimera-ai/functions/shared/database"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
)

const createPostsTable = `
	CREATE TABLE IF NOT EXISTS posts (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		content TEXT,
		category VARCHAR(100),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

// PostsPostgres is the posts.Store over the posts table of a postgres database
type PostsPostgres struct {
	Db *database.Postgres
}

// NewPostsPostgresFromConnectionString returns a posts postgres store from a connection string
func NewPostsPostgresFromConnectionString(ctx context.Context, options *database.PostgresOptions) (*PostsPostgres, error) {
	db, err := database.NewPostgresDatabase(ctx, options)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to postgres db")
	}

	return &PostsPostgres{
		Db: db,
	}, nil
}

// GetPost returns the post with the given id, empty when there is none
func (p *PostsPostgres) GetPost(ctx context.Context, id int64) ([]posts.Post, error) {
	rows, err := p.Db.Conn.Query(ctx, `
	SELECT id, title, content, category, created_at, updated_at
	FROM posts
	WHERE id = $1
	LIMIT 1`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get post %d", id)
	}

	return scanPosts(rows, true)
}

// ListPosts returns a page of posts, newest first
func (p *PostsPostgres) ListPosts(ctx context.Context, limit, offset int) ([]posts.Post, error) {
	rows, err := p.Db.Conn.Query(ctx, `
	SELECT id, title, content, category, created_at, updated_at
	FROM posts
	ORDER BY created_at DESC, id DESC
	LIMIT $1
	OFFSET $2`, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}

	return scanPosts(rows, true)
}

// ListCategories returns the post count of every category, the most used first
func (p *PostsPostgres) ListCategories(ctx context.Context) ([]posts.CategoryCount, error) {
	categories := []posts.CategoryCount{}

	rows, err := p.Db.Conn.Query(ctx, `
	SELECT category, COUNT(*) AS post_count
	FROM posts
	GROUP BY category
	ORDER BY post_count DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer rows.Close()

	for rows.Next() {
		var category posts.CategoryCount
		if err := rows.Scan(&category.Category, &category.PostCount); err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// ListRecent returns the summaries of the newest posts
func (p *PostsPostgres) ListRecent(ctx context.Context, limit int) ([]posts.PostSummary, error) {
	recent := []posts.PostSummary{}

	rows, err := p.Db.Conn.Query(ctx, `
	SELECT id, title, category, created_at
	FROM posts
	ORDER BY created_at DESC, id DESC
	LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list recent posts")
	}
	defer rows.Close()

	for rows.Next() {
		var summary posts.PostSummary
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.Category, &summary.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan recent post")
		}
		recent = append(recent, summary)
	}

	return recent, rows.Err()
}

// Search returns the newest posts whose title, content or category contain query
func (p *PostsPostgres) Search(ctx context.Context, query string, limit int) ([]posts.Post, error) {
	rows, err := p.Db.Conn.Query(ctx, `
	SELECT id, title, content, category, created_at
	FROM posts
	WHERE title ILIKE '%' || $1::text || '%'
		OR content ILIKE '%' || $1::text || '%'
		OR category ILIKE '%' || $1::text || '%'
	ORDER BY created_at DESC, id DESC
	LIMIT $2`, query, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "search posts %q", query)
	}

	return scanPosts(rows, false)
}

// GetStats returns the aggregates of the posts table
func (p *PostsPostgres) GetStats(ctx context.Context) (*posts.Stats, error) {
	var stats posts.Stats

	err := p.Db.Conn.QueryRow(ctx, `
	SELECT
		COUNT(*) AS total_posts,
		COUNT(DISTINCT category) AS total_categories,
		MAX(created_at) AS latest_post,
		MIN(created_at) AS first_post
	FROM posts`).Scan(
		&stats.TotalPosts,
		&stats.TotalCategories,
		&stats.LatestPost,
		&stats.FirstPost)
	if err != nil {
		return nil, errors.Wrap(err, "get stats")
	}

	return &stats, nil
}

// Initialize creates the posts table and inserts the seed posts whose title is
// not in the table yet, running it again changes nothing
func (p *PostsPostgres) Initialize(ctx context.Context) error {
	query, args := seedQuery(posts.SeedPosts)

	err := p.Db.Conn.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, createPostsTable); err != nil {
			return errors.Wrap(err, "create posts table")
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Wrap(err, "insert seed posts")
		}

		return nil
	})

	return err
}

// Close releases the connections of the store
func (p *PostsPostgres) Close() {
	p.Db.Close()
}

func seedQuery(seed []posts.SeedPost) (string, []any) {
	values := make([]string, 0, len(seed))
	args := make([]any, 0, len(seed)*3)

	for i, post := range seed {
		n := i * 3
		values = append(values, fmt.Sprintf("($%d::text, $%d::text, $%d::text)", n+1, n+2, n+3))
		args = append(args, post.Title, post.Content, post.Category)
	}

	return fmt.Sprintf(`
	INSERT INTO posts (title, content, category)
	SELECT seed.title, seed.content, seed.category
	FROM (VALUES %s) AS seed (title, content, category)
	WHERE NOT EXISTS (
		SELECT 1 FROM posts WHERE posts.title = seed.title
	)
	ON CONFLICT DO NOTHING`, strings.Join(values, ",\n\t\t")), args
}

func scanPosts(rows pgx.Rows, withUpdatedAt bool) ([]posts.Post, error) {
	defer rows.Close()

	result := []posts.Post{}

	for rows.Next() {
		var post posts.Post
		dest := []any{&post.ID, &post.Title, &post.Content, &post.Category, &post.CreatedAt}
		if withUpdatedAt {
			dest = append(dest, &post.UpdatedAt)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "scan post")
		}
		result = append(result, post)
	}

	return result, rows.Err()
}

//go:build integration

package database

import (
	"context"
	"os"
	"testing"

	"github.com/chimera-ai/functions/posts"
	"github.com/chimera-ai/functions/shared/database"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PostsPostgres {
	t.Helper()

	connection := os.Getenv("POSTGRES_TEST_URL")
	if connection == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}

	ctx := context.Background()

	store, err := NewPostsPostgresFromConnectionString(ctx, &database.PostgresOptions{
		Connection:  connection,
		MinPoolSize: 0,
		MaxPoolSize: 2,
	})
	require.NoError(t, err)

	_, err = store.Db.Conn.Exec(ctx, "DROP TABLE IF EXISTS posts")
	require.NoError(t, err)

	t.Cleanup(store.Close)

	return store
}

func TestPostsPostgres_Initialize(t *testing.T) {
	c := require.New(t)
	ctx := context.Background()

	store := newTestStore(t)

	c.NoError(store.Initialize(ctx))
	c.NoError(store.Initialize(ctx))

	stats, err := store.GetStats(ctx)
	c.NoError(err)
	c.Equal(int64(len(posts.SeedPosts)), stats.TotalPosts)
	c.Equal(int64(6), stats.TotalCategories)
	c.NotNil(stats.LatestPost)
	c.NotNil(stats.FirstPost)

	categories, err := store.ListCategories(ctx)
	c.NoError(err)

	var total int64
	for _, category := range categories {
		total += category.PostCount
	}
	c.Equal(stats.TotalPosts, total)
}

func TestPostsPostgres_Queries(t *testing.T) {
	c := require.New(t)
	ctx := context.Background()

	store := newTestStore(t)
	c.NoError(store.Initialize(ctx))

	all, err := store.ListPosts(ctx, 10, 0)
	c.NoError(err)
	c.Len(all, 6)
	c.NotNil(all[0].UpdatedAt)

	requireNewestFirst(t, all)

	page, err := store.ListPosts(ctx, 2, 1)
	c.NoError(err)
	c.Equal(all[1:3], page)

	post, err := store.GetPost(ctx, all[0].ID)
	c.NoError(err)
	c.Len(post, 1)
	c.Equal(all[0].Title, post[0].Title)

	missing, err := store.GetPost(ctx, 999999)
	c.NoError(err)
	c.Empty(missing)
	c.NotNil(missing)

	recent, err := store.ListRecent(ctx, posts.RecentLimit)
	c.NoError(err)
	c.Len(recent, posts.RecentLimit)
	for i, summary := range recent {
		c.Equal(all[i].ID, summary.ID)
		c.Equal(all[i].Title, summary.Title)
	}

	found, err := store.Search(ctx, "nlp", posts.SearchLimit)
	c.NoError(err)
	c.Len(found, 1)
	c.Equal("Multi-Language NLP Models", found[0].Title)
	c.Nil(found[0].UpdatedAt)

	byContent, err := store.Search(ctx, "techniques", posts.SearchLimit)
	c.NoError(err)
	c.Len(byContent, 2)
	c.Equal("Database Performance Tuning", byContent[0].Title)
	c.Equal("Real-Time AI Processing at Scale", byContent[1].Title)
	requireNewestFirst(t, byContent)

	byCategory, err := store.Search(ctx, "Infrastructure", posts.SearchLimit)
	c.NoError(err)
	c.Len(byCategory, 1)
	c.Equal("Global Deployment Strategies", byCategory[0].Title)

	limited, err := store.Search(ctx, "techniques", 1)
	c.NoError(err)
	c.Equal(byContent[:1], limited)

	none, err := store.Search(ctx, "no such post", posts.SearchLimit)
	c.NoError(err)
	c.Empty(none)
}

func TestPostsPostgres_EmptyTable(t *testing.T) {
	c := require.New(t)
	ctx := context.Background()

	store := newTestStore(t)

	_, err := store.Db.Conn.Exec(ctx, createPostsTable)
	c.NoError(err)

	stats, err := store.GetStats(ctx)
	c.NoError(err)
	c.Zero(stats.TotalPosts)
	c.Nil(stats.LatestPost)
	c.Nil(stats.FirstPost)
}

// requireNewestFirst checks result is ordered by created_at then id, both descending
func requireNewestFirst(t *testing.T, result []posts.Post) {
	t.Helper()

	for i := 1; i < len(result); i++ {
		previous, current := result[i-1], result[i]
		require.False(t, current.CreatedAt.After(previous.CreatedAt), "post %d is newer than post %d", current.ID, previous.ID)
		if current.CreatedAt.Equal(previous.CreatedAt) {
			require.Less(t, current.ID, previous.ID)
		}
	}
}

package posts

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetPost(ctx context.Context, id int64) ([]Post, error) {
	args := m.Called(ctx, id)
	return postsArg(args, 0), args.Error(1)
}

func (m *mockStore) ListPosts(ctx context.Context, limit, offset int) ([]Post, error) {
	args := m.Called(ctx, limit, offset)
	return postsArg(args, 0), args.Error(1)
}

func (m *mockStore) ListCategories(ctx context.Context) ([]CategoryCount, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]CategoryCount)
	return categories, args.Error(1)
}

func (m *mockStore) ListRecent(ctx context.Context, limit int) ([]PostSummary, error) {
	args := m.Called(ctx, limit)
	recent, _ := args.Get(0).([]PostSummary)
	return recent, args.Error(1)
}

func (m *mockStore) Search(ctx context.Context, query string, limit int) ([]Post, error) {
	args := m.Called(ctx, query, limit)
	return postsArg(args, 0), args.Error(1)
}

func (m *mockStore) GetStats(ctx context.Context) (*Stats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*Stats)
	return stats, args.Error(1)
}

func (m *mockStore) Initialize(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func postsArg(args mock.Arguments, idx int) []Post {
	posts, _ := args.Get(idx).([]Post)
	return posts
}

package posts

import "context"

// Store is the interface for all the operations over the posts table
type Store interface {
	// GetPost returns the post with the given id, empty when it does not exist
	GetPost(ctx context.Context, id int64) ([]Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]Post, error)
	ListCategories(ctx context.Context) ([]CategoryCount, error)
	ListRecent(ctx context.Context, limit int) ([]PostSummary, error)
	// Search matches query case-insensitively against title, content and category
	Search(ctx context.Context, query string, limit int) ([]Post, error)
	GetStats(ctx context.Context) (*Stats, error)
	// Initialize creates the posts table and inserts the seed posts that are
	// not there yet
	Initialize(ctx context.Context) error
}

// UnavailableStore fails every operation with Err, it stands in for a store
// that could not be built so that routes which do not touch the data still work
type UnavailableStore struct {
	Err error
}

// GetPost fails with the store error
func (s UnavailableStore) GetPost(context.Context, int64) ([]Post, error) {
	return nil, s.Err
}

// ListPosts fails with the store error
func (s UnavailableStore) ListPosts(context.Context, int, int) ([]Post, error) {
	return nil, s.Err
}

// ListCategories fails with the store error
func (s UnavailableStore) ListCategories(context.Context) ([]CategoryCount, error) {
	return nil, s.Err
}

// ListRecent fails with the store error
func (s UnavailableStore) ListRecent(context.Context, int) ([]PostSummary, error) {
	return nil, s.Err
}

// Search fails with the store error
func (s UnavailableStore) Search(context.Context, string, int) ([]Post, error) {
	return nil, s.Err
}

// GetStats fails with the store error
func (s UnavailableStore) GetStats(context.Context) (*Stats, error) {
	return nil, s.Err
}

// Initialize fails with the store error
func (s UnavailableStore) Initialize(context.Context) error {
	return s.Err
}

package posts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRequest_defaults(t *testing.T) {
	c := require.New(t)

	req, err := NewRequest("/posts", nil)
	c.NoError(err)
	c.Equal(&Request{Route: RoutePosts, Limit: DefaultLimit, Offset: DefaultOffset}, req)
}

func TestNewRequest_posts(t *testing.T) {
	c := require.New(t)

	req, err := NewRequest("/posts", map[string]string{"limit": "3", "offset": "6"})
	c.NoError(err)
	c.Nil(req.PostID)
	c.Equal(3, req.Limit)
	c.Equal(6, req.Offset)

	req, err = NewRequest("/posts", map[string]string{"postId": "4"})
	c.NoError(err)
	c.NotNil(req.PostID)
	c.Equal(int64(4), *req.PostID)

	req, err = NewRequest("/posts", map[string]string{"postId": ""})
	c.NoError(err)
	c.Nil(req.PostID)
}

func TestNewRequest_invalidParams(t *testing.T) {
	c := require.New(t)

	for _, params := range []map[string]string{
		{"postId": "abc"},
		{"limit": "ten"},
		{"offset": "1.5"},
		{"limit": "-1"},
		{"offset": "-10"},
	} {
		req, err := NewRequest("/posts", params)
		c.Nil(req)
		c.True(errors.Is(err, ErrInvalidParameter), err)
	}
}

func TestNewRequest_otherRoutesIgnoreIntegers(t *testing.T) {
	c := require.New(t)

	req, err := NewRequest("/categories", map[string]string{"limit": "ten"})
	c.NoError(err)
	c.Equal(RouteCategories, req.Route)
	c.Equal(DefaultLimit, req.Limit)
}

func TestNewRequest_searchAndInit(t *testing.T) {
	c := require.New(t)

	req, err := NewRequest("/search", map[string]string{"q": "NLP"})
	c.NoError(err)
	c.Equal(RouteSearch, req.Route)
	c.Equal("NLP", req.Query)

	req, err = NewRequest("/init", map[string]string{"action": "create"})
	c.NoError(err)
	c.Equal(RouteInit, req.Route)
	c.Equal(ActionCreate, req.Action)
}

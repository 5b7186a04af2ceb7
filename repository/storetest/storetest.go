// Package storetest is a conformance suite for forum.Store implementations.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/forum"
)

// Factory returns an empty, migrated store. It is called once per subtest.
type Factory func(t *testing.T) forum.Store

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// Run exercises every forum.Store operation against stores from newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("duplicate name", func(t *testing.T) { testDuplicateName(t, newStore(t)) })
	t.Run("topics newest first", func(t *testing.T) { testListTopics(t, newStore(t)) })
	t.Run("topic by id", func(t *testing.T) { testTopicByID(t, newStore(t)) })
	t.Run("posts newest first", func(t *testing.T) { testListPosts(t, newStore(t)) })
	t.Run("referential integrity", func(t *testing.T) { testReferentialIntegrity(t, newStore(t)) })
}

func testUsers(t *testing.T, s forum.Store) {
	ctx := context.Background()

	ada, err := s.CreateUser(ctx, "Ada", "hash-a")
	require.NoError(t, err)
	assert.False(t, ada.ID.IsZero())

	grace, err := s.CreateUser(ctx, "Grace Hopper", "hash-g")
	require.NoError(t, err)
	assert.NotEqual(t, ada.ID, grace.ID)

	byName, err := s.UserByName(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, ada, byName)

	byID, err := s.UserByID(ctx, grace.ID)
	require.NoError(t, err)
	assert.Equal(t, grace, byID)

	_, err = s.UserByName(ctx, "ada")
	require.ErrorIs(t, err, forum.ErrNoSuchUser)

	_, err = s.UserByID(ctx, forum.UserID(1_000_000))
	require.ErrorIs(t, err, forum.ErrNoSuchUser)
}

func testDuplicateName(t *testing.T, s forum.Store) {
	ctx := context.Background()

	first, err := s.CreateUser(ctx, "Ada", "hash-1")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "Ada", "hash-2")
	require.ErrorIs(t, err, forum.ErrNameAlreadyInUse)

	stored, err := s.UserByName(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "hash-1", stored.PasswordHash)
}

func testListTopics(t *testing.T, s forum.Store) {
	ctx := context.Background()

	ada, err := s.CreateUser(ctx, "Ada", "hash")
	require.NoError(t, err)

	var created []forum.Topic
	for i := range 5 {
		tp, err := s.CreateTopic(ctx, forum.NewTopic{
			Title:     fmt.Sprintf("topic %d", i),
			CreatedBy: ada.ID,
			CreatedAt: epoch.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		created = append(created, tp)
	}

	all, err := s.ListTopics(ctx, forum.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, tp := range all {
		want := created[4-i]
		assert.Equal(t, want.ID, tp.ID)
		assert.Equal(t, want.Title, tp.Title)
		assert.True(t, want.CreatedAt.Equal(tp.CreatedAt), "created_at round trip: %s != %s", want.CreatedAt, tp.CreatedAt)
		assert.Equal(t, ada.ID, tp.Creator.ID)
		assert.Equal(t, "Ada", tp.Creator.Name)
		if i > 0 {
			assert.True(t, all[i-1].CreatedAt.After(tp.CreatedAt))
		}
	}

	window, err := s.ListTopics(ctx, forum.Page{Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, created[3].ID, window[0].ID)
	assert.Equal(t, created[2].ID, window[1].ID)

	past, err := s.ListTopics(ctx, forum.Page{Offset: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func testTopicByID(t *testing.T, s forum.Store) {
	ctx := context.Background()

	ada, err := s.CreateUser(ctx, "Ada", "hash")
	require.NoError(t, err)

	at := time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.FixedZone("X", -5*3600))
	tp, err := s.CreateTopic(ctx, forum.NewTopic{Title: "Hello", CreatedBy: ada.ID, CreatedAt: at})
	require.NoError(t, err)

	got, err := s.TopicByID(ctx, tp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "Ada", got.Creator.Name)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.Empty(t, got.Creator.PasswordHash)

	_, err = s.TopicByID(ctx, tp.ID+1000)
	require.ErrorIs(t, err, forum.ErrNoSuchTopic)
}

func testListPosts(t *testing.T, s forum.Store) {
	ctx := context.Background()

	ada, err := s.CreateUser(ctx, "Ada", "hash")
	require.NoError(t, err)
	grace, err := s.CreateUser(ctx, "Grace", "hash")
	require.NoError(t, err)

	hello, err := s.CreateTopic(ctx, forum.NewTopic{Title: "Hello", CreatedBy: ada.ID, CreatedAt: epoch})
	require.NoError(t, err)
	other, err := s.CreateTopic(ctx, forum.NewTopic{Title: "Other", CreatedBy: ada.ID, CreatedAt: epoch})
	require.NoError(t, err)

	first, err := s.CreatePost(ctx, forum.NewPost{PostedIn: hello.ID, CreatedBy: ada.ID, CreatedAt: epoch.Add(time.Second), Content: "first"})
	require.NoError(t, err)
	second, err := s.CreatePost(ctx, forum.NewPost{PostedIn: hello.ID, CreatedBy: grace.ID, CreatedAt: epoch.Add(2 * time.Second), Content: "second"})
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, forum.NewPost{PostedIn: other.ID, CreatedBy: ada.ID, CreatedAt: epoch.Add(3 * time.Second), Content: "elsewhere"})
	require.NoError(t, err)

	posts, err := s.ListPostsInTopic(ctx, hello.ID, forum.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, "second", posts[0].Content)
	assert.Equal(t, "Grace", posts[0].Creator.Name)
	assert.Equal(t, first.ID, posts[1].ID)
	assert.Equal(t, "Ada", posts[1].Creator.Name)
	assert.Equal(t, hello.ID, posts[1].PostedIn)

	tail, err := s.ListPostsInTopic(ctx, hello.ID, forum.Page{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, first.ID, tail[0].ID)
}

func testReferentialIntegrity(t *testing.T, s forum.Store) {
	ctx := context.Background()

	_, err := s.CreateTopic(ctx, forum.NewTopic{Title: "orphan", CreatedBy: forum.UserID(424242), CreatedAt: epoch})
	require.Error(t, err)
	assert.NotErrorIs(t, err, forum.ErrNameAlreadyInUse)

	ada, err := s.CreateUser(ctx, "Ada", "hash")
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, forum.NewPost{PostedIn: forum.TopicID(424242), CreatedBy: ada.ID, CreatedAt: epoch, Content: "orphan"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, forum.ErrNoSuchTopic)
}

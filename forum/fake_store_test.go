package forum_test

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrymomot/ryob/forum"
)

var errBackend = errors.New("backend unavailable")

// memStore is an in-memory forum.Store with optional failure injection.
type memStore struct {
	mu     sync.Mutex
	users  []forum.User
	topics []forum.Topic
	posts  []forum.Post

	failWrites bool
	userByID   int
}

var _ forum.Store = (*memStore)(nil)

func (s *memStore) CreateUser(_ context.Context, name, hash string) (forum.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return forum.User{}, errBackend
	}
	for _, u := range s.users {
		if u.Name == name {
			return forum.User{}, forum.ErrNameAlreadyInUse
		}
	}
	u := forum.User{ID: forum.UserID(len(s.users) + 1), Name: name, PasswordHash: hash}
	s.users = append(s.users, u)
	return u, nil
}

func (s *memStore) UserByName(_ context.Context, name string) (forum.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Name == name {
			return u, nil
		}
	}
	return forum.User{}, forum.ErrNoSuchUser
}

func (s *memStore) UserByID(_ context.Context, id forum.UserID) (forum.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userByID++
	return s.userLocked(id)
}

func (s *memStore) userLocked(id forum.UserID) (forum.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return forum.User{}, forum.ErrNoSuchUser
}

func (s *memStore) countNamed(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, u := range s.users {
		if u.Name == name {
			n++
		}
	}
	return n
}

func (s *memStore) userByIDCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userByID
}

func (s *memStore) CreateTopic(_ context.Context, in forum.NewTopic) (forum.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return forum.Topic{}, errBackend
	}
	if _, err := s.userLocked(in.CreatedBy); err != nil {
		return forum.Topic{}, errors.New("foreign key violation")
	}
	t := forum.Topic{
		ID:        forum.TopicID(len(s.topics) + 1),
		Title:     in.Title,
		CreatedBy: in.CreatedBy,
		CreatedAt: in.CreatedAt,
	}
	s.topics = append(s.topics, t)
	return t, nil
}

func (s *memStore) TopicByID(_ context.Context, id forum.TopicID) (forum.TopicWithCreator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.topics {
		if t.ID == id {
			u, _ := s.userLocked(t.CreatedBy)
			return forum.TopicWithCreator{Topic: t, Creator: u}, nil
		}
	}
	return forum.TopicWithCreator{}, forum.ErrNoSuchTopic
}

func (s *memStore) ListTopics(_ context.Context, page forum.Page) ([]forum.TopicWithCreator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := slices.Clone(s.topics)
	slices.SortFunc(sorted, func(a, b forum.Topic) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	out := []forum.TopicWithCreator{}
	for _, t := range window(sorted, page) {
		u, _ := s.userLocked(t.CreatedBy)
		out = append(out, forum.TopicWithCreator{Topic: t, Creator: u})
	}
	return out, nil
}

func (s *memStore) CreatePost(_ context.Context, in forum.NewPost) (forum.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return forum.Post{}, errBackend
	}
	if !slices.ContainsFunc(s.topics, func(t forum.Topic) bool { return t.ID == in.PostedIn }) {
		return forum.Post{}, errors.New("foreign key violation")
	}
	p := forum.Post{
		ID:        forum.PostID(len(s.posts) + 1),
		PostedIn:  in.PostedIn,
		CreatedBy: in.CreatedBy,
		CreatedAt: in.CreatedAt,
		Content:   in.Content,
	}
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *memStore) ListPostsInTopic(_ context.Context, topic forum.TopicID, page forum.Page) ([]forum.PostWithCreator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var inTopic []forum.Post
	for _, p := range s.posts {
		if p.PostedIn == topic {
			inTopic = append(inTopic, p)
		}
	}
	slices.SortFunc(inTopic, func(a, b forum.Post) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	out := []forum.PostWithCreator{}
	for _, p := range window(inTopic, page) {
		u, _ := s.userLocked(p.CreatedBy)
		out = append(out, forum.PostWithCreator{Post: p, Creator: u})
	}
	return out, nil
}

func window[T any](items []T, page forum.Page) []T {
	if page.Offset >= len(items) {
		return nil
	}
	end := min(page.Offset+page.Limit, len(items))
	return items[page.Offset:end]
}

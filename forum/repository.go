package forum

import "context"

// UserRepository persists users.
type UserRepository interface {
	// CreateUser inserts a user. A duplicate name yields ErrNameAlreadyInUse.
	CreateUser(ctx context.Context, name, passwordHash string) (User, error)
	// UserByName yields ErrNoSuchUser when absent.
	UserByName(ctx context.Context, name string) (User, error)
	// UserByID yields ErrNoSuchUser when absent.
	UserByID(ctx context.Context, id UserID) (User, error)
}

// TopicRepository persists topics.
type TopicRepository interface {
	CreateTopic(ctx context.Context, t NewTopic) (Topic, error)
	// TopicByID yields ErrNoSuchTopic when absent.
	TopicByID(ctx context.Context, id TopicID) (TopicWithCreator, error)
	// ListTopics returns topics newest first.
	ListTopics(ctx context.Context, page Page) ([]TopicWithCreator, error)
}

// PostRepository persists posts.
type PostRepository interface {
	CreatePost(ctx context.Context, p NewPost) (Post, error)
	// ListPostsInTopic returns the topic's posts newest first.
	ListPostsInTopic(ctx context.Context, topic TopicID, page Page) ([]PostWithCreator, error)
}

// Store bundles every repository of one storage backend.
type Store interface {
	UserRepository
	TopicRepository
	PostRepository
}

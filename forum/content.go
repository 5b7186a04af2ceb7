package forum

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/ryob/pkg/logger"
)

// MaxPageSize bounds the Limit of a listing.
const MaxPageSize = 100

// Content creates and lists topics and posts.
type Content struct {
	topics  TopicRepository
	posts   PostRepository
	now     func() time.Time
	log     *slog.Logger
	metrics *Metrics
}

// ContentOption configures a Content service.
type ContentOption func(*Content)

// WithClock sets the time source for created_at stamps.
func WithClock(now func() time.Time) ContentOption {
	return func(c *Content) {
		if now != nil {
			c.now = now
		}
	}
}

// WithContentLogger sets the logger. Defaults to a no-op logger.
func WithContentLogger(l *slog.Logger) ContentOption {
	return func(c *Content) {
		if l != nil {
			c.log = l
		}
	}
}

// WithContentMetrics enables topic and post counters.
func WithContentMetrics(m *Metrics) ContentOption {
	return func(c *Content) {
		c.metrics = m
	}
}

// NewContent creates a Content service.
func NewContent(topics TopicRepository, posts PostRepository, opts ...ContentOption) *Content {
	c := &Content{
		topics: topics,
		posts:  posts,
		now:    time.Now,
		log:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTopic stores a topic created now by creator.
func (c *Content) CreateTopic(ctx context.Context, creator UserID, title string) (Topic, error) {
	t, err := c.topics.CreateTopic(ctx, NewTopic{
		Title:     title,
		CreatedBy: creator,
		CreatedAt: c.stamp(),
	})
	if err != nil {
		c.log.ErrorContext(ctx, "failed to create topic",
			slog.String("user_id", creator.String()),
			slog.Any("error", err),
		)
		return Topic{}, storageError(err)
	}

	c.metrics.topicCreated()
	c.log.InfoContext(ctx, "topic created",
		slog.String("topic_id", t.ID.String()),
		slog.String("user_id", creator.String()),
	)
	return t, nil
}

// ListTopics returns topics with their creators, newest first.
func (c *Content) ListTopics(ctx context.Context, page Page) ([]TopicWithCreator, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	topics, err := c.topics.ListTopics(ctx, page)
	if err != nil {
		return nil, storageError(err)
	}
	return topics, nil
}

// FindTopic returns a topic with its creator or ErrNoSuchTopic.
func (c *Content) FindTopic(ctx context.Context, id TopicID) (TopicWithCreator, error) {
	t, err := c.topics.TopicByID(ctx, id)
	if err != nil {
		return TopicWithCreator{}, storageError(err)
	}
	return t, nil
}

// CreatePost stores a post created now by creator in topic.
// A topic that does not exist surfaces as ErrStorageFailure.
func (c *Content) CreatePost(ctx context.Context, creator UserID, topic TopicID, content string) (Post, error) {
	p, err := c.posts.CreatePost(ctx, NewPost{
		PostedIn:  topic,
		CreatedBy: creator,
		CreatedAt: c.stamp(),
		Content:   content,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "failed to create post",
			slog.String("topic_id", topic.String()),
			slog.String("user_id", creator.String()),
			slog.Any("error", err),
		)
		return Post{}, storageError(err)
	}

	c.metrics.postCreated()
	c.log.InfoContext(ctx, "post created",
		slog.String("post_id", p.ID.String()),
		slog.String("topic_id", topic.String()),
		slog.String("user_id", creator.String()),
	)
	return p, nil
}

// ListPostsInTopic returns the posts of a topic with their creators, newest first.
func (c *Content) ListPostsInTopic(ctx context.Context, topic TopicID, page Page) ([]PostWithCreator, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	posts, err := c.posts.ListPostsInTopic(ctx, topic, page)
	if err != nil {
		return nil, storageError(err)
	}
	return posts, nil
}

// stamp truncates to microseconds so both engines round-trip the value exactly.
func (c *Content) stamp() time.Time {
	return c.now().UTC().Truncate(time.Microsecond)
}

func checkPage(p Page) error {
	if p.Offset < 0 || p.Limit < 1 || p.Limit > MaxPageSize {
		return fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidPage, p.Offset, p.Limit)
	}
	return nil
}

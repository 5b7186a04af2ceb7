package forum

import (
	"time"

	"github.com/dmitrymomot/ryob/pkg/id"
)

// Typed identifiers. A UserID cannot be passed where a TopicID is expected.
type (
	UserID  = id.ID[User]
	TopicID = id.ID[Topic]
	PostID  = id.ID[Post]
)

// User is a registered account. Users are never mutated or deleted.
type User struct {
	ID   UserID `json:"id" db:"id"`
	Name string `json:"name" db:"user_name"`
	// Never serialized, so users cached in redis carry no credentials.
	PasswordHash string `json:"-" db:"password_hash"`
}

// Topic is a discussion thread.
type Topic struct {
	ID        TopicID   `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedBy UserID    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Post is a reply inside a topic.
type Post struct {
	ID        PostID    `json:"id" db:"id"`
	PostedIn  TopicID   `json:"posted_in" db:"posted_in"`
	CreatedBy UserID    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Content   string    `json:"content" db:"content"`
}

// TopicWithCreator is a topic joined with the user who created it.
type TopicWithCreator struct {
	Topic
	Creator User
}

// PostWithCreator is a post joined with the user who wrote it.
type PostWithCreator struct {
	Post
	Creator User
}

// NewTopic is the input to TopicRepository.CreateTopic.
type NewTopic struct {
	Title     string
	CreatedBy UserID
	CreatedAt time.Time
}

// NewPost is the input to PostRepository.CreatePost.
type NewPost struct {
	PostedIn  TopicID
	CreatedBy UserID
	CreatedAt time.Time
	Content   string
}

// Page selects a window of a newest-first listing with SQL LIMIT/OFFSET semantics.
type Page struct {
	Offset int
	Limit  int
}

// PageNumber converts a 1-based page number into a Page of size perPage.
// Numbers below 1 select the first page.
func PageNumber(n, perPage int) Page {
	n = max(n, 1)
	return Page{Offset: (n - 1) * perPage, Limit: perPage}
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/dmitrymomot/ryob/forum"
)

// Store is a forum.Store backed by SQLite.
type Store struct {
	db *sqlx.DB
}

var _ forum.Store = (*Store)(nil)

// New creates a Store over db.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, name, passwordHash string) (forum.User, error) {
	u := forum.User{Name: name, PasswordHash: passwordHash}
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO users (user_name, password_hash) VALUES (?, ?) RETURNING id`,
		name, passwordHash,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err, "users.user_name") {
			return forum.User{}, forum.ErrNameAlreadyInUse
		}
		return forum.User{}, fmt.Errorf("sqlite: create user: %w", err)
	}
	return u, nil
}

func (s *Store) UserByName(ctx context.Context, name string) (forum.User, error) {
	var u forum.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, user_name, password_hash FROM users WHERE user_name = ?`, name)
	if err != nil {
		return forum.User{}, notFound(err, forum.ErrNoSuchUser, "user by name")
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id forum.UserID) (forum.User, error) {
	var u forum.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, user_name, password_hash FROM users WHERE id = ?`, id)
	if err != nil {
		return forum.User{}, notFound(err, forum.ErrNoSuchUser, "user by id")
	}
	return u, nil
}

func (s *Store) CreateTopic(ctx context.Context, in forum.NewTopic) (forum.Topic, error) {
	t := forum.Topic{Title: in.Title, CreatedBy: in.CreatedBy, CreatedAt: in.CreatedAt.UTC()}
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO topics (title, created_by, created_at) VALUES (?, ?, ?) RETURNING id`,
		t.Title, t.CreatedBy, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return forum.Topic{}, fmt.Errorf("sqlite: create topic: %w", err)
	}
	return t, nil
}

// topicRow is a topic joined with its creator.
type topicRow struct {
	forum.Topic
	CreatorName string `db:"creator_name"`
}

func (r topicRow) withCreator() forum.TopicWithCreator {
	return forum.TopicWithCreator{
		Topic:   forum.Topic{ID: r.ID, Title: r.Title, CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt.UTC()},
		Creator: forum.User{ID: r.CreatedBy, Name: r.CreatorName},
	}
}

const selectTopics = `
SELECT t.id, t.title, t.created_by, t.created_at, u.user_name AS creator_name
FROM topics t
INNER JOIN users u ON u.id = t.created_by`

func (s *Store) TopicByID(ctx context.Context, id forum.TopicID) (forum.TopicWithCreator, error) {
	var row topicRow
	if err := s.db.GetContext(ctx, &row, selectTopics+` WHERE t.id = ?`, id); err != nil {
		return forum.TopicWithCreator{}, notFound(err, forum.ErrNoSuchTopic, "topic by id")
	}
	return row.withCreator(), nil
}

func (s *Store) ListTopics(ctx context.Context, page forum.Page) ([]forum.TopicWithCreator, error) {
	var rows []topicRow
	err := s.db.SelectContext(ctx, &rows,
		selectTopics+` ORDER BY t.created_at DESC, t.id DESC LIMIT ? OFFSET ?`,
		page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list topics: %w", err)
	}

	out := make([]forum.TopicWithCreator, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.withCreator())
	}
	return out, nil
}

func (s *Store) CreatePost(ctx context.Context, in forum.NewPost) (forum.Post, error) {
	p := forum.Post{
		PostedIn:  in.PostedIn,
		CreatedBy: in.CreatedBy,
		CreatedAt: in.CreatedAt.UTC(),
		Content:   in.Content,
	}
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO posts (posted_in, created_by, created_at, content) VALUES (?, ?, ?, ?) RETURNING id`,
		p.PostedIn, p.CreatedBy, p.CreatedAt, p.Content,
	).Scan(&p.ID)
	if err != nil {
		return forum.Post{}, fmt.Errorf("sqlite: create post: %w", err)
	}
	return p, nil
}

type postRow struct {
	forum.Post
	CreatorName string `db:"creator_name"`
}

func (s *Store) ListPostsInTopic(ctx context.Context, topic forum.TopicID, page forum.Page) ([]forum.PostWithCreator, error) {
	var rows []postRow
	err := s.db.SelectContext(ctx, &rows, `
SELECT p.id, p.posted_in, p.created_by, p.created_at, p.content, u.user_name AS creator_name
FROM posts p
INNER JOIN users u ON u.id = p.created_by
WHERE p.posted_in = ?
ORDER BY p.created_at DESC, p.id DESC
LIMIT ? OFFSET ?`,
		topic, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list posts: %w", err)
	}

	out := make([]forum.PostWithCreator, 0, len(rows))
	for _, r := range rows {
		p := r.Post
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, forum.PostWithCreator{
			Post:    p,
			Creator: forum.User{ID: p.CreatedBy, Name: r.CreatorName},
		})
	}
	return out, nil
}

func notFound(err, sentinel error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("sqlite: %s: %w", op, err)
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// column, given as "table.column".
func isUniqueViolation(err error, column string) bool {
	var serr *moderncsqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE && strings.Contains(serr.Error(), column)
}

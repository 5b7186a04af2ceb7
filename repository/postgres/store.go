package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/ryob/forum"
)

// uniqueViolation is the SQLSTATE of unique_violation.
const uniqueViolation = "23505"

// userNameConstraint guards users.user_name.
const userNameConstraint = "users_user_name_key"

// DBTX is the query surface shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a forum.Store backed by PostgreSQL.
type Store struct {
	db DBTX
}

var _ forum.Store = (*Store)(nil)

// New creates a Store over db.
func New(db DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, name, passwordHash string) (forum.User, error) {
	u := forum.User{Name: name, PasswordHash: passwordHash}
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (user_name, password_hash) VALUES ($1, $2) RETURNING id`,
		name, passwordHash,
	).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == userNameConstraint {
			return forum.User{}, forum.ErrNameAlreadyInUse
		}
		return forum.User{}, fmt.Errorf("postgres: create user: %w", err)
	}
	return u, nil
}

func (s *Store) UserByName(ctx context.Context, name string) (forum.User, error) {
	return s.user(ctx, `SELECT id, user_name, password_hash FROM users WHERE user_name = $1`, name)
}

func (s *Store) UserByID(ctx context.Context, id forum.UserID) (forum.User, error) {
	return s.user(ctx, `SELECT id, user_name, password_hash FROM users WHERE id = $1`, id.Int64())
}

func (s *Store) user(ctx context.Context, query string, arg any) (forum.User, error) {
	var u forum.User
	err := s.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return forum.User{}, forum.ErrNoSuchUser
		}
		return forum.User{}, fmt.Errorf("postgres: get user: %w", err)
	}
	return u, nil
}

func (s *Store) CreateTopic(ctx context.Context, in forum.NewTopic) (forum.Topic, error) {
	t := forum.Topic{Title: in.Title, CreatedBy: in.CreatedBy, CreatedAt: in.CreatedAt.UTC()}
	err := s.db.QueryRow(ctx,
		`INSERT INTO topics (title, created_by, created_at) VALUES ($1, $2, $3) RETURNING id`,
		t.Title, t.CreatedBy.Int64(), t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return forum.Topic{}, fmt.Errorf("postgres: create topic: %w", err)
	}
	return t, nil
}

const selectTopics = `
SELECT t.id, t.title, t.created_by, t.created_at, u.user_name
FROM topics t
INNER JOIN users u ON u.id = t.created_by`

func scanTopic(row pgx.Row) (forum.TopicWithCreator, error) {
	var t forum.TopicWithCreator
	if err := row.Scan(&t.ID, &t.Title, &t.CreatedBy, &t.CreatedAt, &t.Creator.Name); err != nil {
		return forum.TopicWithCreator{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.Creator.ID = t.CreatedBy
	return t, nil
}

func (s *Store) TopicByID(ctx context.Context, id forum.TopicID) (forum.TopicWithCreator, error) {
	t, err := scanTopic(s.db.QueryRow(ctx, selectTopics+` WHERE t.id = $1`, id.Int64()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return forum.TopicWithCreator{}, forum.ErrNoSuchTopic
		}
		return forum.TopicWithCreator{}, fmt.Errorf("postgres: get topic: %w", err)
	}
	return t, nil
}

func (s *Store) ListTopics(ctx context.Context, page forum.Page) ([]forum.TopicWithCreator, error) {
	rows, err := s.db.Query(ctx,
		selectTopics+` ORDER BY t.created_at DESC, t.id DESC LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("postgres: list topics: %w", err)
	}

	topics, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (forum.TopicWithCreator, error) {
		return scanTopic(row)
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: list topics: %w", err)
	}
	return topics, nil
}

func (s *Store) CreatePost(ctx context.Context, in forum.NewPost) (forum.Post, error) {
	p := forum.Post{
		PostedIn:  in.PostedIn,
		CreatedBy: in.CreatedBy,
		CreatedAt: in.CreatedAt.UTC(),
		Content:   in.Content,
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO posts (posted_in, created_by, created_at, content) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.PostedIn.Int64(), p.CreatedBy.Int64(), p.CreatedAt, p.Content,
	).Scan(&p.ID)
	if err != nil {
		return forum.Post{}, fmt.Errorf("postgres: create post: %w", err)
	}
	return p, nil
}

func (s *Store) ListPostsInTopic(ctx context.Context, topic forum.TopicID, page forum.Page) ([]forum.PostWithCreator, error) {
	rows, err := s.db.Query(ctx, `
SELECT p.id, p.posted_in, p.created_by, p.created_at, p.content, u.user_name
FROM posts p
INNER JOIN users u ON u.id = p.created_by
WHERE p.posted_in = $1
ORDER BY p.created_at DESC, p.id DESC
LIMIT $2 OFFSET $3`,
		topic.Int64(), page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("postgres: list posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (forum.PostWithCreator, error) {
		var p forum.PostWithCreator
		err := row.Scan(&p.ID, &p.PostedIn, &p.CreatedBy, &p.CreatedAt, &p.Content, &p.Creator.Name)
		p.CreatedAt = p.CreatedAt.UTC()
		p.Creator.ID = p.CreatedBy
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: list posts: %w", err)
	}
	return posts, nil
}

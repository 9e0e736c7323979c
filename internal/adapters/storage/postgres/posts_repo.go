package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"health-companion/internal/domain/posts"
)

type PostsRepo struct {
	db *sql.DB
}

func NewPostsRepo(db *sql.DB) *PostsRepo {
	return &PostsRepo{db: db}
}

func (r *PostsRepo) Create(ctx context.Context, p posts.Post) error {
	likes, err := marshalLikes(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO posts (id, author_user_id, content, likes, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		p.ID,
		p.AuthorUserID,
		p.Content,
		likes,
		p.CreatedAt,
	)
	return err
}

func (r *PostsRepo) Update(ctx context.Context, p posts.Post) error {
	likes, err := marshalLikes(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE posts
		SET content = $2, likes = $3
		WHERE id = $1
	`,
		p.ID,
		p.Content,
		likes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return posts.Post{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, author_user_id, content, COALESCE(likes, '{}'::jsonb), created_at
		FROM posts
		WHERE id = $1
	`, id)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return posts.Post{}, ErrNotFound
	}
	return p, err
}

func (r *PostsRepo) List(ctx context.Context, limit int) ([]posts.Post, error) {
	query := `
		SELECT id, author_user_id, content, COALESCE(likes, '{}'::jsonb), created_at
		FROM posts
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posts.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PostsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPost(row rowScanner) (posts.Post, error) {
	var p posts.Post
	var likesRaw []byte

	if err := row.Scan(
		&p.ID,
		&p.AuthorUserID,
		&p.Content,
		&likesRaw,
		&p.CreatedAt,
	); err != nil {
		return posts.Post{}, err
	}

	if err := json.Unmarshal(likesRaw, &p.Likes); err != nil {
		return posts.Post{}, fmt.Errorf("decode likes: %w", err)
	}
	if p.Likes == nil {
		p.Likes = map[string]bool{}
	}

	return p, nil
}

func marshalLikes(p posts.Post) ([]byte, error) {
	if p.Likes == nil {
		return []byte("{}"), nil
	}
	likes, err := json.Marshal(p.Likes)
	if err != nil {
		return nil, fmt.Errorf("encode likes: %w", err)
	}
	return likes, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quillpress/internal/models"
)

// PostStore handles all post-related database operations, including the
// post side of the post_categories association.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const (
	postColumns          = `id, title, content, slug, published, created_at, updated_at`
	qualifiedPostColumns = `p.id, p.title, p.content, p.slug, p.published, p.created_at, p.updated_at`
)

// scanPost scans a row into a Post struct.
func scanPost(scanner rowScanner) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Slug,
		&p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// queryPosts runs a SELECT returning post columns and collects the rows.
// The result is never nil.
func queryPosts(q interface {
	Query(string, ...any) (*sql.Rows, error)
}, query string, args ...any) ([]models.Post, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// List returns every post, published or not, newest first.
func (s *PostStore) List() ([]models.Post, error) {
	items, err := queryPosts(s.db, `
		SELECT `+postColumns+`
		FROM posts
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return items, nil
}

// ListPublished returns all published posts, newest first.
func (s *PostStore) ListPublished() ([]models.Post, error) {
	items, err := queryPosts(s.db, `
		SELECT `+postColumns+`
		FROM posts
		WHERE published
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return items, nil
}

// FindByID retrieves a post regardless of its published flag.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find post %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a published post by its slug. Drafts are reported as
// ErrNotFound.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(
		`SELECT `+postColumns+` FROM posts WHERE slug = $1 AND published`, slug,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find post %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a post with a slug derived from its title and links it to
// the given categories, all in one transaction.
func (s *PostStore) Create(in models.PostInput) (*models.Post, error) {
	p := &models.Post{Title: in.Title, Content: in.Content, Published: in.Published}
	if err := assignSlug(p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	var created *models.Post
	err := withTx(s.db, func(tx *sql.Tx) error {
		var err error
		created, err = scanPost(tx.QueryRow(`
			INSERT INTO posts (title, content, slug, published)
			VALUES ($1, $2, $3, $4)
			RETURNING `+postColumns,
			p.Title, p.Content, p.Slug, p.Published,
		))
		if err != nil {
			return classifyWrite(err)
		}
		return insertLinks(tx, created.ID, in.CategoryIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// Update overwrites title, content and published flag, re-derives the slug
// from the title and bumps updated_at. When in.CategoryIDs is non-nil the
// post's categories are replaced in the same transaction.
func (s *PostStore) Update(id int64, in models.PostInput) (*models.Post, error) {
	p := &models.Post{ID: id, Title: in.Title, Content: in.Content, Published: in.Published}
	if err := assignSlug(p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	var updated *models.Post
	err := withTx(s.db, func(tx *sql.Tx) error {
		var err error
		updated, err = scanPost(tx.QueryRow(`
			UPDATE posts SET
				title = $1, content = $2, slug = $3, published = $4,
				updated_at = NOW()
			WHERE id = $5
			RETURNING `+postColumns,
			p.Title, p.Content, p.Slug, p.Published, id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return classifyWrite(err)
		}
		if in.CategoryIDs == nil {
			return nil
		}
		return replaceLinks(tx, id, in.CategoryIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes a post. Its category links are removed by the foreign key
// cascade.
func (s *PostStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete post %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListPublishedPage returns one page of published posts, newest first,
// optionally restricted to a category. Totals are computed over the same
// filter in a repeatable-read snapshot so they agree with the page.
func (s *PostStore) ListPublishedPage(page, limit int, categoryID *int64) (*models.PostPage, error) {
	if page < 1 || limit < 1 || limit > models.MaxLimit {
		return nil, fmt.Errorf("list posts page=%d limit=%d: %w", page, limit, ErrInvalid)
	}

	tx, err := s.db.BeginTx(context.Background(), &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: begin tx: %w", err)
	}
	defer tx.Rollback()

	from := `FROM posts p WHERE p.published`
	var args []any
	if categoryID != nil {
		var linked bool
		err := tx.QueryRow(
			`SELECT EXISTS (SELECT 1 FROM post_categories WHERE category_id = $1)`, *categoryID,
		).Scan(&linked)
		if err != nil {
			return nil, fmt.Errorf("list posts: check category links: %w", err)
		}
		if !linked {
			return models.EmptyPage(page), nil
		}
		from = `FROM posts p
			JOIN post_categories pc ON pc.post_id = p.id
			WHERE p.published AND pc.category_id = $1`
		args = append(args, *categoryID)
	}

	var total int
	if err := tx.QueryRow(`SELECT COUNT(*) `+from, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("list posts: count: %w", err)
	}

	result := models.EmptyPage(page)
	result.TotalPosts = total
	result.TotalPages = models.TotalPages(total, limit)

	// Checked before computing the offset, which overflows for huge pages.
	if page > result.TotalPages {
		return result, nil
	}
	offset := models.Offset(page, limit)

	query := fmt.Sprintf(`SELECT %s %s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`,
		qualifiedPostColumns, from, len(args)+1, len(args)+2)
	result.Posts, err = queryPosts(tx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return result, nil
}

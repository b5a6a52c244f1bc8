// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"quillpress/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const (
	categoryColumns          = `id, name, description, slug, created_at`
	qualifiedCategoryColumns = `c.id, c.name, c.description, c.slug, c.created_at`
)

// scanCategory scans a row into a Category struct.
func scanCategory(scanner rowScanner) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories, newest first, with their published post
// counts.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + qualifiedCategoryColumns + `,
		       COUNT(p.id) AS post_count
		FROM categories c
		LEFT JOIN post_categories pc ON pc.category_id = c.id
		LEFT JOIN posts p ON p.id = pc.post_id AND p.published
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt,
			&c.PostCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID.
func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find category %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category with a slug derived from its name.
func (s *CategoryStore) Create(name string, description *string) (*models.Category, error) {
	c := &models.Category{Name: name, Description: description}
	if err := assignSlug(c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (name, description, slug)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Description, c.Slug,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", classifyWrite(err))
	}
	return result, nil
}

// Update applies a partial update. A new name also replaces the slug.
// An empty patch returns the current row.
func (s *CategoryStore) Update(id int64, patch models.CategoryPatch) (*models.Category, error) {
	var newSlug *string
	if patch.Name != nil {
		c := &models.Category{Name: *patch.Name}
		if err := assignSlug(c); err != nil {
			return nil, fmt.Errorf("update category: %w", err)
		}
		newSlug = &c.Slug
	}

	row := s.db.QueryRow(`
		UPDATE categories SET
			name = COALESCE($1, name),
			slug = COALESCE($2, slug),
			description = COALESCE($3, description)
		WHERE id = $4
		RETURNING `+categoryColumns,
		patch.Name, newSlug, patch.Description, id,
	)
	result, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update category %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", classifyWrite(err))
	}
	return result, nil
}

// Delete removes a category by ID. Links to posts cascade; the posts stay.
func (s *CategoryStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete category %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListByPostID returns the categories linked to a post, ordered by name.
// An unknown post yields an empty list.
func (s *CategoryStore) ListByPostID(postID int64) ([]models.Category, error) {
	items, err := s.queryLinked(`
		SELECT `+qualifiedCategoryColumns+`
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = $1
		ORDER BY c.name, c.id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list categories of post %d: %w", postID, err)
	}
	return items, nil
}

// ListByPostSlug returns the categories of the published post with the given
// slug. A slug that matches no published post yields an empty list.
func (s *CategoryStore) ListByPostSlug(slug string) ([]models.Category, error) {
	items, err := s.queryLinked(`
		SELECT `+qualifiedCategoryColumns+`
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		JOIN posts p ON p.id = pc.post_id
		WHERE p.slug = $1 AND p.published
		ORDER BY c.name, c.id
	`, slug)
	if err != nil {
		return nil, fmt.Errorf("list categories of post %q: %w", slug, err)
	}
	return items, nil
}

func (s *CategoryStore) queryLinked(query string, arg any) ([]models.Category, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

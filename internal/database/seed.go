package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"quillpress/internal/slug"
)

type seedPost struct {
	title      string
	content    string
	published  bool
	categories []string
}

var (
	seedCategories = []struct{ name, description string }{
		{"Engineering", "Notes from building the platform."},
		{"Announcements", "Product news and release notes."},
	}

	seedPosts = []seedPost{
		{
			title:      "Hello World",
			content:    "Welcome to the blog. This is the first published post.",
			published:  true,
			categories: []string{"Announcements"},
		},
		{
			title:      "Designing the Post Store",
			content:    "How posts, categories and their links are persisted.",
			published:  true,
			categories: []string{"Engineering", "Announcements"},
		},
		{
			title:     "Drafting in Progress",
			content:   "This draft is only visible in the admin listing.",
			published: false,
		},
	}
)

// Seed populates the database with demo categories and posts for local
// development. It does nothing when any post or category already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM posts) + (SELECT COUNT(*) FROM categories)
	`).Scan(&count); err != nil {
		return fmt.Errorf("seed check content: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	categoryIDs := make(map[string]int64, len(seedCategories))
	for _, c := range seedCategories {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO categories (name, description, slug) VALUES ($1, $2, $3)
			RETURNING id
		`, c.name, c.description, slug.Generate(c.name)).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
		categoryIDs[c.name] = id
	}

	for _, p := range seedPosts {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO posts (title, content, slug, published) VALUES ($1, $2, $3, $4)
			RETURNING id
		`, p.title, p.content, slug.Generate(p.title), p.published).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.title, err)
		}
		for _, name := range p.categories {
			if _, err := tx.Exec(
				`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`,
				id, categoryIDs[name],
			); err != nil {
				return fmt.Errorf("seed link post %q: %w", p.title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo content",
		"categories", len(seedCategories),
		"posts", len(seedPosts),
	)
	return nil
}

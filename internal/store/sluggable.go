package store

import (
	"database/sql"
	"fmt"

	"quillpress/internal/database"
	"quillpress/internal/models"
	"quillpress/internal/slug"
)

// Unique and foreign-key constraint names generated by PostgreSQL for the
// schema in internal/database/migrations.
const (
	postSlugConstraint     = "posts_slug_key"
	categorySlugConstraint = "categories_slug_key"
	linkCategoryConstraint = "post_categories_category_id_fkey"
)

// assignSlug derives the slug of e from its slug source. A source with no
// letters or digits is rejected rather than stored as an empty slug.
func assignSlug(e models.Sluggable) error {
	s := slug.Generate(e.SlugSource())
	if s == "" {
		return fmt.Errorf("%w: %q has no characters usable in a slug", ErrInvalid, e.SlugSource())
	}
	e.SetSlug(s)
	return nil
}

// classifyWrite maps constraint violations raised by an INSERT or UPDATE to
// store sentinels. Other errors pass through untouched.
func classifyWrite(err error) error {
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err, postSlugConstraint),
		database.IsUniqueViolation(err, categorySlugConstraint):
		return fmt.Errorf("%w: %w", ErrDuplicateSlug, err)
	case database.IsForeignKeyViolation(err, linkCategoryConstraint):
		return fmt.Errorf("%w: %w", ErrUnknownCategory, err)
	}
	return err
}

// withTx runs fn inside a transaction, committing when fn returns nil.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

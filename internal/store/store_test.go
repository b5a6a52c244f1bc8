// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"quillpress/internal/database"
	"quillpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "quillpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "quillpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// suffix returns a short random token that keeps slugs unique across test
// runs sharing one database.
func suffix() string {
	return uuid.NewString()[:8]
}

// createTestCategory inserts a category with a unique name and removes it
// when the test ends.
func createTestCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()
	c, err := NewCategoryStore(db).Create(name+" "+suffix(), nil)
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	t.Cleanup(func() { cleanCategories(t, db, c.ID) })
	return c
}

// createTestPost inserts a post with a unique title and removes it when the
// test ends.
func createTestPost(t *testing.T, db *sql.DB, title string, published bool, categoryIDs ...int64) *models.Post {
	t.Helper()
	p, err := NewPostStore(db).Create(models.PostInput{
		Title:       title + " " + suffix(),
		Content:     "Content long enough to be valid.",
		Published:   published,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	t.Cleanup(func() { cleanPosts(t, db, p.ID) })
	return p
}

// cleanPosts removes test posts by id. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM posts WHERE id = $1", id)
	}
}

// cleanCategories removes test categories by id. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM categories WHERE id = $1", id)
	}
}

// categoryIDs extracts ids in order.
func categoryIDs(cats []models.Category) []int64 {
	ids := make([]int64, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}

// sameIDs compares two id sets ignoring order.
func sameIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	set := make(map[int64]int, len(want))
	for _, id := range want {
		set[id]++
	}
	for _, id := range got {
		if set[id] == 0 {
			return false
		}
		set[id]--
	}
	return true
}

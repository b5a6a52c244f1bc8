// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory repositories and a chi mux so the
// handlers can be exercised without PostgreSQL.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"quillpress/internal/models"
	"quillpress/internal/slug"
	"quillpress/internal/store"
)

// memStore backs both repository interfaces with maps. err, when set, is
// returned by every method.
type memStore struct {
	posts  map[int64]*models.Post
	cats   map[int64]*models.Category
	links  map[int64][]int64 // post id -> category ids
	nextID int64
	clock  time.Time
	err    error
}

func newMemStore() *memStore {
	return &memStore{
		posts: map[int64]*models.Post{},
		cats:  map[int64]*models.Category{},
		links: map[int64][]int64{},
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

// memPosts and memCategories split the method sets, since both interfaces
// declare List, Create, Update and Delete.
type memPosts struct{ *memStore }
type memCategories struct{ *memStore }

func (m memPosts) sorted(publishedOnly bool) []models.Post {
	out := []models.Post{}
	for _, p := range m.posts {
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b models.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out
}

func (m memPosts) List() ([]models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(false), nil
}

func (m memPosts) ListPublished() ([]models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(true), nil
}

func (m memPosts) ListPublishedPage(page, limit int, categoryID *int64) (*models.PostPage, error) {
	if m.err != nil {
		return nil, m.err
	}
	if page < 1 || limit < 1 || limit > models.MaxLimit {
		return nil, store.ErrInvalid
	}
	var matched []models.Post
	for _, p := range m.sorted(true) {
		if categoryID == nil || slices.Contains(m.links[p.ID], *categoryID) {
			matched = append(matched, p)
		}
	}
	result := models.EmptyPage(page)
	result.TotalPosts = len(matched)
	result.TotalPages = models.TotalPages(len(matched), limit)
	if page <= result.TotalPages {
		off := models.Offset(page, limit)
		result.Posts = matched[off:min(off+limit, len(matched))]
	}
	return result, nil
}

func (m memPosts) FindByID(id int64) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m memPosts) FindBySlug(s string) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.posts {
		if p.Slug == s && p.Published {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m memPosts) slugTaken(s string, except int64) bool {
	for _, p := range m.posts {
		if p.Slug == s && p.ID != except {
			return true
		}
	}
	return false
}

func (m memPosts) checkCategories(ids []int64) error {
	for _, id := range ids {
		if _, ok := m.cats[id]; !ok {
			return store.ErrUnknownCategory
		}
	}
	return nil
}

func (m memPosts) Create(in models.PostInput) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := slug.Generate(in.Title)
	if m.slugTaken(s, 0) {
		return nil, store.ErrDuplicateSlug
	}
	if err := m.checkCategories(in.CategoryIDs); err != nil {
		return nil, err
	}
	m.nextID++
	now := m.tick()
	p := &models.Post{
		ID: m.nextID, Title: in.Title, Content: in.Content, Slug: s,
		Published: in.Published, CreatedAt: now, UpdatedAt: now,
	}
	m.posts[p.ID] = p
	m.links[p.ID] = slices.Compact(slices.Clone(in.CategoryIDs))
	cp := *p
	return &cp, nil
}

func (m memPosts) Update(id int64, in models.PostInput) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	s := slug.Generate(in.Title)
	if m.slugTaken(s, id) {
		return nil, store.ErrDuplicateSlug
	}
	if err := m.checkCategories(in.CategoryIDs); err != nil {
		return nil, err
	}
	p.Title, p.Content, p.Slug, p.Published = in.Title, in.Content, s, in.Published
	p.UpdatedAt = m.tick()
	if in.CategoryIDs != nil {
		m.links[id] = slices.Clone(in.CategoryIDs)
	}
	cp := *p
	return &cp, nil
}

func (m memPosts) Delete(id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.posts, id)
	delete(m.links, id)
	return nil
}

func (m memPosts) SetCategories(postID int64, categoryIDs []int64) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.posts[postID]
	if !ok {
		return store.ErrNotFound
	}
	if err := m.checkCategories(categoryIDs); err != nil {
		return err
	}
	m.links[postID] = slices.Compact(slices.Clone(categoryIDs))
	p.UpdatedAt = m.tick()
	return nil
}

func (m memCategories) List() ([]models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Category{}
	for _, c := range m.cats {
		cp := *c
		for pid, ids := range m.links {
			if slices.Contains(ids, c.ID) && m.posts[pid].Published {
				cp.PostCount++
			}
		}
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b models.Category) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (m memCategories) Create(name string, description *string) (*models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := slug.Generate(name)
	for _, c := range m.cats {
		if c.Slug == s {
			return nil, store.ErrDuplicateSlug
		}
	}
	m.nextID++
	c := &models.Category{ID: m.nextID, Name: name, Description: description, Slug: s, CreatedAt: m.tick()}
	m.cats[c.ID] = c
	cp := *c
	return &cp, nil
}

func (m memCategories) Update(id int64, patch models.CategoryPatch) (*models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.cats[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
		c.Slug = slug.Generate(*patch.Name)
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	cp := *c
	return &cp, nil
}

func (m memCategories) Delete(id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.cats[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.cats, id)
	for pid, ids := range m.links {
		m.links[pid] = slices.DeleteFunc(ids, func(v int64) bool { return v == id })
	}
	return nil
}

func (m memCategories) linked(postID int64) []models.Category {
	out := []models.Category{}
	for _, id := range m.links[postID] {
		if c, ok := m.cats[id]; ok {
			out = append(out, *c)
		}
	}
	slices.SortFunc(out, func(a, b models.Category) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (m memCategories) ListByPostID(postID int64) ([]models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.linked(postID), nil
}

func (m memCategories) ListByPostSlug(s string) ([]models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.posts {
		if p.Slug == s && p.Published {
			return m.linked(p.ID), nil
		}
	}
	return []models.Category{}, nil
}

// testEnv wires handlers over a shared memStore behind a chi mux that uses
// the same paths as the real router.
type testEnv struct {
	Store *memStore
	Mux   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ms := newMemStore()
	posts := NewPosts(memPosts{ms}, memCategories{ms})
	cats := NewCategories(memCategories{ms})

	r := chi.NewRouter()
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", cats.List)
		r.Post("/", cats.Create)
		r.Patch("/{id}", cats.Update)
		r.Delete("/{id}", cats.Delete)
	})
	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Post("/", posts.Create)
		r.Get("/published", posts.ListPublished)
		r.Get("/page", posts.Page)
		r.Get("/slug/{slug}", posts.BySlug)
		r.Get("/slug/{slug}/categories", posts.CategoriesBySlug)
		r.Get("/{id}", posts.ByID)
		r.Put("/{id}", posts.Update)
		r.Delete("/{id}", posts.Delete)
		r.Get("/{id}/categories", posts.Categories)
		r.Put("/{id}/categories", posts.SetCategories)
	})

	return &testEnv{Store: ms, Mux: r}
}

// do sends a request with an optional JSON body and returns the recorder.
func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.Mux.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorded JSON body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// errorBody returns the "error" field of a JSON error response.
func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

// seedCategory creates a category directly in the store.
func (env *testEnv) seedCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := memCategories{env.Store}.Create(name, nil)
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

// seedPost creates a post directly in the store.
func (env *testEnv) seedPost(t *testing.T, title string, published bool, categoryIDs ...int64) *models.Post {
	t.Helper()
	p, err := memPosts{env.Store}.Create(models.PostInput{
		Title: title, Content: "Seeded post content.", Published: published, CategoryIDs: categoryIDs,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

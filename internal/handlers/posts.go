// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers of the blog API.
// Handlers are grouped by resource (posts, categories) and receive their
// storage through small repository interfaces.
package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"quillpress/internal/models"
	"quillpress/internal/slug"
)

// PostRepository is the post storage used by the handlers.
type PostRepository interface {
	List() ([]models.Post, error)
	ListPublished() ([]models.Post, error)
	ListPublishedPage(page, limit int, categoryID *int64) (*models.PostPage, error)
	FindByID(id int64) (*models.Post, error)
	FindBySlug(slug string) (*models.Post, error)
	Create(in models.PostInput) (*models.Post, error)
	Update(id int64, in models.PostInput) (*models.Post, error)
	Delete(id int64) error
	SetCategories(postID int64, categoryIDs []int64) error
}

// Posts serves the post endpoints, including the category lookups keyed
// by post.
type Posts struct {
	posts      PostRepository
	categories CategoryRepository
}

// NewPosts creates the post handlers.
func NewPosts(posts PostRepository, categories CategoryRepository) *Posts {
	return &Posts{posts: posts, categories: categories}
}

// postRequest is the body of create and update. CategoryIDs stays nil when
// the field is absent, which leaves links untouched on update.
type postRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Published   bool    `json:"published"`
	CategoryIDs []int64 `json:"categoryIds"`
}

func (req postRequest) input() models.PostInput {
	return models.PostInput{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Published:   req.Published,
		CategoryIDs: req.CategoryIDs,
	}
}

// readPost decodes and validates a post body. It writes the error response
// itself and reports whether the handler may continue.
func readPost(w http.ResponseWriter, r *http.Request) (models.PostInput, bool) {
	var req postRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return models.PostInput{}, false
	}
	if msg := validatePost(req.Title, req.Content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return models.PostInput{}, false
	}
	for _, id := range req.CategoryIDs {
		if id < 1 {
			writeError(w, http.StatusBadRequest, "categoryIds must be positive integers")
			return models.PostInput{}, false
		}
	}
	return req.input(), true
}

// List returns all posts, drafts included.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List()
	if err != nil {
		storeError(w, r, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ListPublished returns every published post.
func (h *Posts) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished()
	if err != nil {
		storeError(w, r, "list published posts", err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Page returns one page of published posts, optionally filtered by category.
func (h *Posts) Page(w http.ResponseWriter, r *http.Request) {
	pq, err := parsePageQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.posts.ListPublishedPage(pq.Page, pq.Limit, pq.CategoryID)
	if err != nil {
		storeError(w, r, "list posts page", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// BySlug returns a published post by slug.
func (h *Posts) BySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if !slug.Valid(s) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	post, err := h.posts.FindBySlug(s)
	if err != nil {
		storeError(w, r, "find post by slug", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ByID returns a post by id regardless of its published state.
func (h *Posts) ByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	post, err := h.posts.FindByID(id)
	if err != nil {
		storeError(w, r, "find post", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create adds a post and links it to the given categories.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := readPost(w, r)
	if !ok {
		return
	}
	post, err := h.posts.Create(in)
	if err != nil {
		storeError(w, r, "create post", err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update rewrites a post and, when categoryIds is present, its links.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	in, ok := readPost(w, r)
	if !ok {
		return
	}
	if _, err := h.posts.Update(id, in); err != nil {
		storeError(w, r, "update post", err)
		return
	}
	writeJSON(w, http.StatusOK, success)
}

// Delete removes a post and its category links.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.posts.Delete(id); err != nil {
		storeError(w, r, "delete post", err)
		return
	}
	writeJSON(w, http.StatusOK, success)
}

// categoriesRequest is the body of SetCategories. The field is required;
// an empty list unlinks every category.
type categoriesRequest struct {
	CategoryIDs *[]int64 `json:"categoryIds"`
}

// SetCategories replaces the category links of a post without touching its
// title, content or published state.
func (h *Posts) SetCategories(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req categoriesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CategoryIDs == nil {
		writeError(w, http.StatusBadRequest, "categoryIds is required")
		return
	}
	for _, cid := range *req.CategoryIDs {
		if cid < 1 {
			writeError(w, http.StatusBadRequest, "categoryIds must be positive integers")
			return
		}
	}
	if err := h.posts.SetCategories(id, *req.CategoryIDs); err != nil {
		storeError(w, r, "set post categories", err)
		return
	}
	writeJSON(w, http.StatusOK, success)
}

// Categories returns the categories linked to a post id.
func (h *Posts) Categories(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	cats, err := h.categories.ListByPostID(id)
	if err != nil {
		storeError(w, r, "list post categories", err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// CategoriesBySlug returns the categories of the published post with the
// given slug.
func (h *Posts) CategoriesBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if !slug.Valid(s) {
		writeJSON(w, http.StatusOK, []models.Category{})
		return
	}
	cats, err := h.categories.ListByPostSlug(s)
	if err != nil {
		storeError(w, r, "list post categories by slug", err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

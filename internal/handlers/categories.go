package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"quillpress/internal/models"
)

// CategoryRepository is the category storage used by the handlers.
type CategoryRepository interface {
	List() ([]models.Category, error)
	Create(name string, description *string) (*models.Category, error)
	Update(id int64, patch models.CategoryPatch) (*models.Category, error)
	Delete(id int64) error
	ListByPostID(postID int64) ([]models.Category, error)
	ListByPostSlug(slug string) ([]models.Category, error)
}

// Categories serves the category endpoints.
type Categories struct {
	categories CategoryRepository
}

// NewCategories creates the category handlers.
func NewCategories(categories CategoryRepository) *Categories {
	return &Categories{categories: categories}
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List returns every category with its published post count.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List()
	if err != nil {
		storeError(w, r, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Create adds a category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateCategoryName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateDescription(req.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	cat, err := h.categories.Create(strings.TrimSpace(req.Name), req.Description)
	if err != nil {
		storeError(w, r, "create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

// Update changes the name and/or description of a category.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name != nil {
		if msg := validateCategoryName(*req.Name); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if msg := validateDescription(req.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	cat, err := h.categories.Update(id, models.CategoryPatch{Name: req.Name, Description: req.Description})
	if err != nil {
		storeError(w, r, "update category", err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// Delete removes a category and its post links.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.categories.Delete(id); err != nil {
		storeError(w, r, "delete category", err)
		return
	}
	writeJSON(w, http.StatusOK, success)
}

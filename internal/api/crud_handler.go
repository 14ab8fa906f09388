package api

import (
	"alcyxob/fitness-admin/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListOptions carries the query parameters shared by every listing.
type ListOptions struct {
	ActiveOnly bool
	Limit      int64
}

// listFilter answers a listing narrowed by one query parameter.
type listFilter[T any] func(ctx context.Context, value string, opts ListOptions) ([]T, error)

// CrudHandler serves list/get/create/update/delete/toggle for one managed
// collection.
type CrudHandler[T any] struct {
	name      string
	manager   *repository.Manager[T]
	newEntity func() T
	filters   map[string]listFilter[T]
	params    []string
	fallback  func(ctx context.Context, opts ListOptions) ([]T, error)
	readOnly  map[string]bool
}

// NewCrudHandler creates a handler for manager. newEntity supplies the
// defaults a created entity starts from; nil means the zero value.
func NewCrudHandler[T any](name string, manager *repository.Manager[T], newEntity func() T) *CrudHandler[T] {
	if newEntity == nil {
		newEntity = func() T {
			var zero T
			return zero
		}
	}
	return &CrudHandler[T]{
		name:      name,
		manager:   manager,
		newEntity: newEntity,
		filters:   make(map[string]listFilter[T]),
		readOnly:  map[string]bool{"id": true},
	}
}

// WithFilter adds a listing narrowed by the query parameter param. Filters
// are tried in the order they were added.
func (h *CrudHandler[T]) WithFilter(param string, fn listFilter[T]) *CrudHandler[T] {
	if _, ok := h.filters[param]; !ok {
		h.params = append(h.params, param)
	}
	h.filters[param] = fn
	return h
}

// WithDefaultList replaces the unfiltered listing.
func (h *CrudHandler[T]) WithDefaultList(fn func(ctx context.Context, opts ListOptions) ([]T, error)) *CrudHandler[T] {
	h.fallback = fn
	return h
}

// WithReadOnly rejects partial updates that touch keys. Such fields have
// dedicated endpoints.
func (h *CrudHandler[T]) WithReadOnly(keys ...string) *CrudHandler[T] {
	for _, k := range keys {
		h.readOnly[k] = true
	}
	return h
}

// Register mounts the routes on group. Create is skipped when withCreate is false.
func (h *CrudHandler[T]) Register(group *gin.RouterGroup, withCreate bool) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	if withCreate {
		group.POST("", h.Create)
	}
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.PATCH("/:id/active", h.ToggleActive)
}

// List godoc
// @Summary List entities
// @Description Ordered listing. ?parentId narrows to one parent, ?activeOnly=true
// hides soft-deleted entities, ?limit caps the result.
func (h *CrudHandler[T]) List(c *gin.Context) {
	opts := ListOptions{ActiveOnly: c.Query("activeOnly") == "true"}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			abortWithError(c, http.StatusBadRequest, "Validation error: limit must be a non-negative integer")
			return
		}
		opts.Limit = limit
	}

	items, err := h.list(c, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CrudHandler[T]) list(c *gin.Context, opts ListOptions) ([]T, error) {
	ctx := c.Request.Context()
	if parentID := c.Query("parentId"); parentID != "" {
		return h.manager.ListByParent(ctx, parentID, opts.ActiveOnly)
	}
	for _, param := range h.params {
		if value := c.Query(param); value != "" {
			return h.filters[param](ctx, value, opts)
		}
	}
	if h.fallback != nil {
		return h.fallback(ctx, opts)
	}
	return h.manager.List(ctx, nil, opts.ActiveOnly, opts.Limit)
}

func (h *CrudHandler[T]) Get(c *gin.Context) {
	entity, err := h.manager.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if entity == nil {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("%s not found", h.name))
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Create stores the posted entity and answers with its new id.
func (h *CrudHandler[T]) Create(c *gin.Context) {
	entity := h.newEntity()
	if err := c.ShouldBindJSON(&entity); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	id, err := h.manager.Create(c.Request.Context(), entity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update applies a partial update. Only the keys present in the body are
// written; read-only keys such as the id are rejected.
func (h *CrudHandler[T]) Update(c *gin.Context) {
	id := c.Param("id")
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read request body")
		return
	}

	var patch map[string]json.RawMessage
	if err := json.Unmarshal(body, &patch); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	keys := make([]string, 0, len(patch))
	for k := range patch {
		if h.readOnly[k] {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %s cannot be updated", k))
			return
		}
		if !h.manager.HasField(k) {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: unknown field %q", k))
			return
		}
		keys = append(keys, k)
	}

	existing, err := h.manager.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("%s not found", h.name))
		return
	}

	// Decode into a fresh value so nested maps replace rather than merge.
	fresh := new(T)
	if err := json.Unmarshal(body, fresh); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.manager.UpdateFields(c.Request.Context(), id, *fresh, keys); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes the entity. A missing id is not an error.
func (h *CrudHandler[T]) Delete(c *gin.Context) {
	if err := h.manager.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type toggleActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ToggleActive writes only the soft-delete flag.
func (h *CrudHandler[T]) ToggleActive(c *gin.Context) {
	var req toggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.manager.ToggleActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isActive": *req.IsActive})
}

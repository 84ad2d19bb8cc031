package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AngoraSix/projects.core/internal/auth"
	"github.com/AngoraSix/projects.core/internal/projects/domain"
)

// ProjectsService is the slice of the application service the handlers
// need.
type ProjectsService interface {
	FindProjects(ctx context.Context, filter domain.ListProjectsFilter, requester *domain.Contributor) (domain.ProjectStream, error)
	FindSingleProject(ctx context.Context, projectID string, requester *domain.Contributor) (*domain.Project, error)
	CreateProject(ctx context.Context, newProject *domain.Project, requester domain.Contributor) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, updateData *domain.Project, requester domain.Contributor) (*domain.Project, error)
	AdministeredProject(ctx context.Context, projectID string, requester domain.Contributor) (*domain.Project, error)
}

type Handler struct {
	service  ProjectsService
	basePath string
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()
	filter := domain.FilterFromQueryParams(c.Request.URL.Query())
	requester := auth.Requesting(c)

	stream, err := h.service.FindProjects(ctx, filter, requester)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer stream.Close(ctx)

	out := make([]ProjectDTO, 0, 16)
	for stream.Next(ctx) {
		out = append(out, toProjectDTO(stream.Current(), requester, h.basePath))
	}
	if err := stream.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": out})
}

func (h *Handler) get(c *gin.Context) {
	requester := auth.Requesting(c)
	p, err := h.service.FindSingleProject(c.Request.Context(), c.Param("id"), requester)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toProjectDTO(*p, requester, h.basePath)})
}

func (h *Handler) create(c *gin.Context) {
	requester := auth.Requesting(c)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "contributor required"})
		return
	}

	var req ProjectDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	attributes, ok := toAttributes(req.Attributes)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid attributes"})
		return
	}
	requirements, ok := toAttributes(req.Requirements)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid requirements"})
		return
	}

	// The creating contributor becomes creator and sole initial admin.
	newProject, err := domain.NewProject(
		strings.TrimSpace(req.Name),
		requester.ContributorID,
		[]domain.Contributor{*requester},
		req.Private,
		attributes,
		requirements,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	saved, err := h.service.CreateProject(c.Request.Context(), newProject, *requester)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProject) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Header("Location", h.basePath+"/projects/"+saved.ID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": toProjectDTO(*saved, requester, h.basePath)})
}

func (h *Handler) update(c *gin.Context) {
	requester := auth.Requesting(c)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "contributor required"})
		return
	}

	var req ProjectDTO
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	attributes, ok := toAttributes(req.Attributes)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid attributes"})
		return
	}
	requirements, ok := toAttributes(req.Requirements)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid requirements"})
		return
	}

	updateData := &domain.Project{
		Name:         strings.TrimSpace(req.Name),
		Attributes:   attributes,
		Requirements: requirements,
	}
	p, err := h.service.UpdateProject(c.Request.Context(), c.Param("id"), updateData, *requester)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toProjectDTO(*p, requester, h.basePath)})
}

// isAdmin answers whether the requesting contributor administers the
// project. A missing project and a non-admin requester both read as
// false, so existence is never leaked.
func (h *Handler) isAdmin(c *gin.Context) {
	requester := auth.Requesting(c)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "contributor required"})
		return
	}
	p, err := h.service.AdministeredProject(c.Request.Context(), c.Param("id"), *requester)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, IsAdminDTO{IsAdmin: p != nil})
}

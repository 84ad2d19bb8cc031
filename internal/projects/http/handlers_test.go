package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngoraSix/projects.core/internal/auth"
	"github.com/AngoraSix/projects.core/internal/projects/domain"
)

const (
	contributorHeader = "A6-Contributor"
	basePath          = "/projects-core"
)

type fakeService struct {
	projects      []domain.Project
	single        *domain.Project
	administered  *domain.Project
	created       *domain.Project
	updated       *domain.Project
	createdWith   domain.Contributor
	updateDataArg *domain.Project
	lastFilter    domain.ListProjectsFilter
}

func (f *fakeService) FindProjects(_ context.Context, filter domain.ListProjectsFilter, _ *domain.Contributor) (domain.ProjectStream, error) {
	f.lastFilter = filter
	return &sliceStream{projects: f.projects}, nil
}

func (f *fakeService) FindSingleProject(context.Context, string, *domain.Contributor) (*domain.Project, error) {
	return f.single, nil
}

func (f *fakeService) CreateProject(_ context.Context, newProject *domain.Project, requester domain.Contributor) (*domain.Project, error) {
	f.created = newProject
	f.createdWith = requester
	saved := *newProject
	saved.ID = "generated-id"
	return &saved, nil
}

func (f *fakeService) UpdateProject(_ context.Context, _ string, updateData *domain.Project, _ domain.Contributor) (*domain.Project, error) {
	f.updateDataArg = updateData
	return f.updated, nil
}

func (f *fakeService) AdministeredProject(context.Context, string, domain.Contributor) (*domain.Project, error) {
	return f.administered, nil
}

type sliceStream struct {
	projects []domain.Project
	pos      int
}

func (s *sliceStream) Next(context.Context) bool {
	if s.pos >= len(s.projects) {
		return false
	}
	s.pos++
	return true
}

func (s *sliceStream) Current() domain.Project { return s.projects[s.pos-1] }

func (s *sliceStream) Err() error { return nil }

func (s *sliceStream) Close(context.Context) error { return nil }

func setupRouter(t *testing.T, svc ProjectsService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	api := r.Group(basePath)
	api.Use(auth.RequestingContributor(contributorHeader))
	Register(api.Group("/projects"), svc, basePath)
	return r
}

func contributorHeaderValue(t *testing.T, contributorID string) string {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"contributorId": contributorID})
	require.NoError(t, err)
	return base64.URLEncoding.EncodeToString(raw)
}

func doRequest(t *testing.T, r *gin.Engine, method, path, contributorID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if contributorID != "" {
		req.Header.Set(contributorHeader, contributorHeaderValue(t, contributorID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleProject() domain.Project {
	return domain.Project{
		ID:        "p1",
		Name:      "a6 community",
		CreatorID: "creator1",
		Admins:    []domain.Contributor{{ContributorID: "creator1"}},
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Attributes: []domain.Attribute{
			{Key: "industry", Value: domain.StringValue("software")},
		},
	}
}

func TestListProjects(t *testing.T) {
	svc := &fakeService{projects: []domain.Project{sampleProject()}}
	r := setupRouter(t, svc)

	w := doRequest(t, r, http.MethodGet, basePath+"/projects?adminIds=creator1&private=false", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"creator1"}, svc.lastFilter.AdminIDs)
	require.NotNil(t, svc.lastFilter.Private)
	assert.False(t, *svc.lastFilter.Private)

	var resp struct {
		OK       bool         `json:"ok"`
		Projects []ProjectDTO `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "p1", resp.Projects[0].ID)
	require.Len(t, resp.Projects[0].Links, 1)
	assert.Equal(t, "self", resp.Projects[0].Links[0].Rel)
	assert.Equal(t, basePath+"/projects/p1", resp.Projects[0].Links[0].Href)
}

func TestListProjects_AdminGetsUpdateLink(t *testing.T) {
	svc := &fakeService{projects: []domain.Project{sampleProject()}}
	r := setupRouter(t, svc)

	w := doRequest(t, r, http.MethodGet, basePath+"/projects", "creator1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Projects []ProjectDTO `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Projects, 1)

	rels := make([]string, 0, 2)
	for _, l := range resp.Projects[0].Links {
		rels = append(rels, l.Rel)
	}
	assert.ElementsMatch(t, []string{"self", "updateProject"}, rels)
}

func TestGetProject(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		p := sampleProject()
		r := setupRouter(t, &fakeService{single: &p})

		w := doRequest(t, r, http.MethodGet, basePath+"/projects/p1", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("absent or invisible is a plain 404", func(t *testing.T) {
		r := setupRouter(t, &fakeService{})

		w := doRequest(t, r, http.MethodGet, basePath+"/projects/p1", "", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateProject(t *testing.T) {
	t.Run("anonymous callers may not create", func(t *testing.T) {
		svc := &fakeService{}
		r := setupRouter(t, svc)

		w := doRequest(t, r, http.MethodPost, basePath+"/projects", "", ProjectDTO{Name: "a6 community"})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, svc.created)
	})

	t.Run("creator becomes owner and sole admin", func(t *testing.T) {
		svc := &fakeService{}
		r := setupRouter(t, svc)
		body := ProjectDTO{
			Name:    "a6 community",
			Private: true,
			Attributes: []AttributeDTO{
				{Key: "industry", Value: domain.StringValue("software")},
			},
		}

		w := doRequest(t, r, http.MethodPost, basePath+"/projects", "creator1", body)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, basePath+"/projects/generated-id", w.Header().Get("Location"))

		require.NotNil(t, svc.created)
		assert.Equal(t, "creator1", svc.created.CreatorID)
		assert.Equal(t, []domain.Contributor{{ContributorID: "creator1"}}, svc.created.Admins)
		assert.True(t, svc.created.Private)
		assert.Equal(t, "creator1", svc.createdWith.ContributorID)
	})

	t.Run("missing name is a client error", func(t *testing.T) {
		r := setupRouter(t, &fakeService{})

		w := doRequest(t, r, http.MethodPost, basePath+"/projects", "creator1", ProjectDTO{})

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-scalar attribute value is a client error", func(t *testing.T) {
		r := setupRouter(t, &fakeService{})
		body := `{"name":"a6 community","attributes":[{"key":"industry","value":{"nested":true}}]}`

		req := httptest.NewRequest(http.MethodPost, basePath+"/projects", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(contributorHeader, contributorHeaderValue(t, "creator1"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateProject(t *testing.T) {
	t.Run("anonymous callers may not update", func(t *testing.T) {
		r := setupRouter(t, &fakeService{})

		w := doRequest(t, r, http.MethodPut, basePath+"/projects/p1", "", ProjectDTO{Name: "renamed"})

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("passes only the editable fields", func(t *testing.T) {
		updated := sampleProject()
		svc := &fakeService{updated: &updated}
		r := setupRouter(t, svc)
		body := ProjectDTO{
			Name: "renamed",
			Requirements: []AttributeDTO{
				{Key: "skill", Value: domain.StringValue("go")},
			},
		}

		w := doRequest(t, r, http.MethodPut, basePath+"/projects/p1", "creator1", body)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.updateDataArg)
		assert.Equal(t, "renamed", svc.updateDataArg.Name)
		assert.Empty(t, svc.updateDataArg.Admins)
		assert.Empty(t, svc.updateDataArg.CreatorID)
	})

	t.Run("unauthorized reads as not found", func(t *testing.T) {
		r := setupRouter(t, &fakeService{})

		w := doRequest(t, r, http.MethodPut, basePath+"/projects/p1", "outsider", ProjectDTO{Name: "renamed"})

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestIsAdmin(t *testing.T) {
	t.Run("requires a contributor", func(t *testing.T) {
		r := setupRouter(t, &fakeService{})

		w := doRequest(t, r, http.MethodGet, basePath+"/projects/p1/is-admin", "", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin", func(t *testing.T) {
		p := sampleProject()
		r := setupRouter(t, &fakeService{administered: &p})

		w := doRequest(t, r, http.MethodGet, basePath+"/projects/p1/is-admin", "creator1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp IsAdminDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsAdmin)
	})

	t.Run("non-admin and missing project read the same", func(t *testing.T) {
		r := setupRouter(t, &fakeService{})

		w := doRequest(t, r, http.MethodGet, basePath+"/projects/p1/is-admin", "outsider", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp IsAdminDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsAdmin)
	})
}

package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/AngoraSix/projects.core/internal/projects/domain"
	"github.com/AngoraSix/projects.core/internal/projects/repository"
)

// ProjectRepository is the storage the service runs compiled predicates
// against.
type ProjectRepository interface {
	FindUsingFilter(ctx context.Context, predicate bson.M) (domain.ProjectStream, error)
	FindOneUsingFilter(ctx context.Context, predicate bson.M) (*domain.Project, error)
	Save(ctx context.Context, project *domain.Project) (*domain.Project, error)
}

// EventPublisher announces domain events to downstream services.
type EventPublisher interface {
	PublishProjectCreated(ctx context.Context, projectID string, creator domain.Contributor) error
}

// ProjectService orchestrates project reads and writes. Read visibility
// is enforced by the compiled predicate; update authorization reuses the
// same compiler with an admin-scoped filter, so an unauthorized update
// is indistinguishable from a missing project.
//
// The service is stateless and safe for concurrent use.
type ProjectService struct {
	repo      ProjectRepository
	publisher EventPublisher
	logger    *zap.Logger
}

func NewProjectService(repo ProjectRepository, publisher EventPublisher, logger *zap.Logger) *ProjectService {
	return &ProjectService{repo: repo, publisher: publisher, logger: logger}
}

// FindProjects streams the projects matching the filter that the
// requester may see. The caller must Close the stream.
func (s *ProjectService) FindProjects(
	ctx context.Context,
	filter domain.ListProjectsFilter,
	requester *domain.Contributor,
) (domain.ProjectStream, error) {
	return s.repo.FindUsingFilter(ctx, repository.CompileFilter(filter, requester))
}

// FindSingleProject returns the project when it exists and is visible to
// the requester, nil otherwise. The two cases are deliberately merged so
// private projects cannot be probed for existence.
func (s *ProjectService) FindSingleProject(
	ctx context.Context,
	projectID string,
	requester *domain.Contributor,
) (*domain.Project, error) {
	predicate := repository.CompileFilter(domain.ListProjectsFilter{IDs: []string{projectID}}, requester)
	return s.repo.FindOneUsingFilter(ctx, predicate)
}

// CreateProject persists a new project and announces it. Creation is
// open to any authenticated caller; ownership comes from the creator and
// admin fields the caller's identity was mapped into. A failed publish
// never rolls back the write.
func (s *ProjectService) CreateProject(
	ctx context.Context,
	newProject *domain.Project,
	requester domain.Contributor,
) (*domain.Project, error) {
	if strings.TrimSpace(newProject.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidProject)
	}
	saved, err := s.repo.Save(ctx, newProject)
	if err != nil {
		return nil, err
	}
	if err := s.publisher.PublishProjectCreated(ctx, saved.ID, requester); err != nil {
		// Event delivery is best-effort at this layer; the write stands.
		s.logger.Error("publish project created event failed",
			zap.String("projectId", saved.ID),
			zap.Error(err))
	}
	return saved, nil
}

// UpdateProject overwrites name, attributes and requirements of a
// project the requester administers. The lookup is scoped to the
// requester's admin membership, so it fails closed: nil means not found
// or not authorized, with no way to tell which.
func (s *ProjectService) UpdateProject(
	ctx context.Context,
	projectID string,
	updateData *domain.Project,
	requester domain.Contributor,
) (*domain.Project, error) {
	existing, err := s.administeredLookup(ctx, projectID, requester)
	if err != nil || existing == nil {
		return nil, err
	}
	existing.UpdateData(updateData)
	return s.repo.Save(ctx, existing)
}

// AdministeredProject returns the project only when the requester
// administers it; nil otherwise.
func (s *ProjectService) AdministeredProject(
	ctx context.Context,
	projectID string,
	requester domain.Contributor,
) (*domain.Project, error) {
	return s.administeredLookup(ctx, projectID, requester)
}

func (s *ProjectService) administeredLookup(
	ctx context.Context,
	projectID string,
	requester domain.Contributor,
) (*domain.Project, error) {
	predicate := repository.CompileFilter(domain.ListProjectsFilter{
		IDs:      []string{projectID},
		AdminIDs: []string{requester.ContributorID},
	}, &requester)
	return s.repo.FindOneUsingFilter(ctx, predicate)
}

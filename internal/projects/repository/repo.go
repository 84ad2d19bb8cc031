package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AngoraSix/projects.core/internal/projects/domain"
)

const collectionName = "projects"

// ProjectRepository executes compiled predicates against the projects
// collection and persists aggregates.
type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionName)}
}

// FindUsingFilter runs the predicate and returns a stream over the
// matches. The caller owns the stream and must Close it.
func (r *ProjectRepository) FindUsingFilter(ctx context.Context, predicate bson.M) (domain.ProjectStream, error) {
	cur, err := r.col.Find(ctx, predicate)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	return &projectStream{cur: cur}, nil
}

// FindOneUsingFilter returns the first match, or nil when the predicate
// matches nothing. Absence is not an error.
func (r *ProjectRepository) FindOneUsingFilter(ctx context.Context, predicate bson.M) (*domain.Project, error) {
	var p domain.Project
	err := r.col.FindOne(ctx, predicate).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

// Save persists the project: insert with a fresh id when it has none,
// replace-by-id otherwise.
func (r *ProjectRepository) Save(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
		if _, err := r.col.InsertOne(ctx, p); err != nil {
			p.ID = ""
			return nil, fmt.Errorf("insert project: %w", err)
		}
		return p, nil
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return nil, fmt.Errorf("replace project %s: %w", p.ID, err)
	}
	return p, nil
}

// projectStream adapts a Mongo cursor to domain.ProjectStream.
type projectStream struct {
	cur     *mongo.Cursor
	current domain.Project
	err     error
}

func (s *projectStream) Next(ctx context.Context) bool {
	if s.err != nil {
		return false
	}
	if !s.cur.Next(ctx) {
		s.err = s.cur.Err()
		return false
	}
	var p domain.Project
	if err := s.cur.Decode(&p); err != nil {
		s.err = fmt.Errorf("decode project: %w", err)
		return false
	}
	s.current = p
	return true
}

func (s *projectStream) Current() domain.Project { return s.current }

func (s *projectStream) Err() error { return s.err }

func (s *projectStream) Close(ctx context.Context) error { return s.cur.Close(ctx) }

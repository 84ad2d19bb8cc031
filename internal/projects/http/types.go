package http

import (
	"net/http"
	"time"

	"github.com/AngoraSix/projects.core/internal/projects/domain"
)

type AttributeDTO struct {
	Key   string       `json:"key"`
	Value domain.Value `json:"value"`
}

// LinkDTO is a hypermedia affordance attached to a resource
// representation.
type LinkDTO struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

// ProjectDTO is the wire representation of a project. On input only
// name, private, attributes and requirements are honored; identity and
// ownership fields come from the requesting contributor.
type ProjectDTO struct {
	ID           string               `json:"id,omitempty"`
	Name         string               `json:"name"`
	CreatorID    string               `json:"creatorId,omitempty"`
	Admins       []domain.Contributor `json:"admins,omitempty"`
	CreatedAt    *time.Time           `json:"createdAt,omitempty"`
	Private      bool                 `json:"private"`
	Attributes   []AttributeDTO       `json:"attributes"`
	Requirements []AttributeDTO       `json:"requirements"`
	Links        []LinkDTO            `json:"links,omitempty"`
}

type IsAdminDTO struct {
	IsAdmin bool `json:"isAdmin"`
}

func toProjectDTO(p domain.Project, requester *domain.Contributor, basePath string) ProjectDTO {
	createdAt := p.CreatedAt
	dto := ProjectDTO{
		ID:           p.ID,
		Name:         p.Name,
		CreatorID:    p.CreatorID,
		Admins:       p.Admins,
		CreatedAt:    &createdAt,
		Private:      p.Private,
		Attributes:   toAttributeDTOs(p.Attributes),
		Requirements: toAttributeDTOs(p.Requirements),
	}
	dto.Links = resolveHypermedia(p, requester, basePath)
	return dto
}

// resolveHypermedia attaches the affordances the requester may follow:
// self always, update only for admins. Links never grant anything on
// their own; authorization stays with the service layer.
func resolveHypermedia(p domain.Project, requester *domain.Contributor, basePath string) []LinkDTO {
	self := basePath + "/projects/" + p.ID
	links := []LinkDTO{{Rel: "self", Href: self, Method: http.MethodGet}}
	if p.IsAdministeredBy(requester) {
		links = append(links, LinkDTO{Rel: "updateProject", Href: self, Method: http.MethodPut})
	}
	return links
}

func toAttributeDTOs(attrs []domain.Attribute) []AttributeDTO {
	out := make([]AttributeDTO, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, AttributeDTO{Key: a.Key, Value: a.Value})
	}
	return out
}

func toAttributes(dtos []AttributeDTO) ([]domain.Attribute, bool) {
	out := make([]domain.Attribute, 0, len(dtos))
	for _, d := range dtos {
		if d.Key == "" || d.Value.IsZero() {
			return nil, false
		}
		out = append(out, domain.Attribute{Key: d.Key, Value: d.Value})
	}
	return out, true
}

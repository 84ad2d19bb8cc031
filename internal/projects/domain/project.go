package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidProject marks malformed project input (e.g. a missing name).
// It is the only error the domain surfaces; lookups that find nothing
// report absence, never an error.
var ErrInvalidProject = errors.New("invalid project")

// Project is the aggregate root. It carries ownership (creator) and
// administration (admins) data used by the visibility rules, plus
// free-form attribute and requirement sets.
type Project struct {
	ID           string        `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string        `bson:"name" json:"name"`
	CreatorID    string        `bson:"creatorId" json:"creatorId"`
	Admins       []Contributor `bson:"admins" json:"admins"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	Private      bool          `bson:"private" json:"private"`
	Attributes   []Attribute   `bson:"attributes" json:"attributes"`
	Requirements []Attribute   `bson:"requirements" json:"requirements"`
}

// NewProject builds a not-yet-persisted Project. The id stays empty until
// the repository assigns one on first save; CreatedAt is stamped here and
// never mutated afterwards. Admins are deduplicated by contributor id.
func NewProject(
	name string,
	creatorID string,
	admins []Contributor,
	private bool,
	attributes []Attribute,
	requirements []Attribute,
) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if attributes == nil {
		attributes = []Attribute{}
	}
	if requirements == nil {
		requirements = []Attribute{}
	}
	return &Project{
		Name:         name,
		CreatorID:    creatorID,
		Admins:       dedupContributors(admins),
		CreatedAt:    time.Now().UTC(),
		Private:      private,
		Attributes:   attributes,
		Requirements: requirements,
	}, nil
}

// AddAttribute inserts an attribute unless an equal key+value pair is
// already present.
func (p *Project) AddAttribute(a Attribute) {
	for _, existing := range p.Attributes {
		if existing == a {
			return
		}
	}
	p.Attributes = append(p.Attributes, a)
}

// IsAdministeredBy reports whether the contributor appears in the
// project's admin set. Anonymous requests administer nothing.
func (p *Project) IsAdministeredBy(c *Contributor) bool {
	if c == nil {
		return false
	}
	for _, admin := range p.Admins {
		if admin.ContributorID == c.ContributorID {
			return true
		}
	}
	return false
}

// UpdateData overwrites the caller-editable fields wholesale. Admins,
// privacy, creator and creation time are not touched here.
func (p *Project) UpdateData(other *Project) {
	p.Name = other.Name
	p.Attributes = other.Attributes
	p.Requirements = other.Requirements
}

func dedupContributors(in []Contributor) []Contributor {
	out := make([]Contributor, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		if _, ok := seen[c.ContributorID]; ok {
			continue
		}
		seen[c.ContributorID] = struct{}{}
		out = append(out, c)
	}
	return out
}

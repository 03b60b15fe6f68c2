package client

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

// Relationship is a directed edge from the owning client to another client.
// Edges are ordered and duplicates are tolerated except where the reciprocal
// workflow would re-add an existing edge.
type Relationship struct {
	RelatedClientID uuid.UUID
	Type            string
}

type Client struct {
	id            uuid.UUID
	firstName     string
	lastName      string
	preferredName string
	email         string
	phone         string
	dateOfBirth   string
	relationships []Relationship
	documents     []uuid.UUID
	sessions      int
	createdAt     time.Time
	updatedAt     time.Time
}

func New(firstName, lastName string) Client {
	return Client{
		id:            uuid.New(),
		firstName:     strings.TrimSpace(firstName),
		lastName:      strings.TrimSpace(lastName),
		relationships: []Relationship{},
		documents:     []uuid.UUID{},
	}
}

func Hydrate(
	id uuid.UUID,
	firstName string,
	lastName string,
	preferredName string,
	email string,
	phone string,
	dateOfBirth string,
	relationships []Relationship,
	documents []uuid.UUID,
	sessions int,
	createdAt time.Time,
	updatedAt time.Time,
) Client {
	if relationships == nil {
		relationships = []Relationship{}
	}
	if documents == nil {
		documents = []uuid.UUID{}
	}
	return Client{
		id:            id,
		firstName:     strings.TrimSpace(firstName),
		lastName:      strings.TrimSpace(lastName),
		preferredName: strings.TrimSpace(preferredName),
		email:         strings.TrimSpace(email),
		phone:         strings.TrimSpace(phone),
		dateOfBirth:   strings.TrimSpace(dateOfBirth),
		relationships: relationships,
		documents:     documents,
		sessions:      sessions,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (c Client) ID() uuid.UUID          { return c.id }
func (c Client) FirstName() string      { return c.firstName }
func (c Client) LastName() string       { return c.lastName }
func (c Client) PreferredName() string  { return c.preferredName }
func (c Client) Email() string          { return c.email }
func (c Client) Phone() string          { return c.phone }
func (c Client) DateOfBirth() string    { return c.dateOfBirth }
func (c Client) Documents() []uuid.UUID { return c.documents }
func (c Client) Sessions() int          { return c.sessions }
func (c Client) CreatedAt() time.Time   { return c.createdAt }
func (c Client) UpdatedAt() time.Time   { return c.updatedAt }
func (c Client) IsZero() bool           { return c.id == uuid.Nil }

func (c Client) FullName() string {
	return strings.TrimSpace(c.firstName + " " + c.lastName)
}

// DisplayName prefers the nickname when one is on file.
func (c Client) DisplayName() string {
	if c.preferredName != "" {
		return c.preferredName
	}
	return c.FullName()
}

func (c Client) Relationships() []Relationship {
	out := make([]Relationship, len(c.relationships))
	copy(out, c.relationships)
	return out
}

func (c Client) HasRelationshipWith(relatedClientID uuid.UUID) bool {
	for _, rel := range c.relationships {
		if rel.RelatedClientID == relatedClientID {
			return true
		}
	}
	return false
}

func (c Client) WithContact(email, phone string) Client {
	c.email = strings.TrimSpace(email)
	c.phone = strings.TrimSpace(phone)
	return c
}

func (c Client) WithPreferredName(preferredName string) Client {
	c.preferredName = strings.TrimSpace(preferredName)
	return c
}

func (c Client) WithDateOfBirth(dateOfBirth string) Client {
	c.dateOfBirth = strings.TrimSpace(dateOfBirth)
	return c
}

func (c Client) WithName(firstName, lastName string) Client {
	c.firstName = strings.TrimSpace(firstName)
	c.lastName = strings.TrimSpace(lastName)
	return c
}

func (c Client) WithRelationships(relationships []Relationship) Client {
	if relationships == nil {
		relationships = []Relationship{}
	}
	out := make([]Relationship, len(relationships))
	copy(out, relationships)
	c.relationships = out
	return c
}

// AddRelationship appends an edge. The reciprocal workflow relies on this
// being strictly additive.
func (c Client) AddRelationship(rel Relationship) Client {
	updated := make([]Relationship, 0, len(c.relationships)+1)
	updated = append(updated, c.relationships...)
	updated = append(updated, rel)
	c.relationships = updated
	return c
}

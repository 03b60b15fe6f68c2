package client_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
)

func TestNew_TrimsNames(t *testing.T) {
	t.Parallel()

	c := client.New("  Jane ", " Doe  ")
	assert.Equal(t, "Jane", c.FirstName())
	assert.Equal(t, "Doe", c.LastName())
	assert.Equal(t, "Jane Doe", c.FullName())
	assert.NotEqual(t, uuid.Nil, c.ID())
	assert.False(t, c.IsZero())
}

func TestDisplayName_PrefersPreferredName(t *testing.T) {
	t.Parallel()

	c := client.New("Jane", "Doe")
	assert.Equal(t, "Jane Doe", c.DisplayName())
	assert.Equal(t, "Janie", c.WithPreferredName("Janie").DisplayName())
}

func TestWithRelationships_CopiesInput(t *testing.T) {
	t.Parallel()

	edges := []client.Relationship{{RelatedClientID: uuid.New(), Type: "parent"}}
	c := client.New("Jane", "Doe").WithRelationships(edges)

	edges[0].Type = "mutated"
	require.Len(t, c.Relationships(), 1)
	assert.Equal(t, "parent", c.Relationships()[0].Type)
}

func TestAddRelationship_DoesNotShareBackingArray(t *testing.T) {
	t.Parallel()

	base := client.New("Jane", "Doe")
	a := base.AddRelationship(client.Relationship{RelatedClientID: uuid.New(), Type: "a"})
	b := base.AddRelationship(client.Relationship{RelatedClientID: uuid.New(), Type: "b"})

	require.Len(t, a.Relationships(), 1)
	require.Len(t, b.Relationships(), 1)
	assert.Equal(t, "a", a.Relationships()[0].Type)
	assert.Equal(t, "b", b.Relationships()[0].Type)
	assert.Empty(t, base.Relationships())
}

func TestHasRelationshipWith(t *testing.T) {
	t.Parallel()

	other := uuid.New()
	c := client.New("Jane", "Doe").AddRelationship(client.Relationship{RelatedClientID: other, Type: "sibling"})
	assert.True(t, c.HasRelationshipWith(other))
	assert.False(t, c.HasRelationshipWith(uuid.New()))
}

func TestEdges_DropsSelfAndInvalidIDs(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	valid := uuid.New()

	edges := client.Edges([]client.RelationshipDTO{
		{RelatedClientID: valid.String(), Type: " spouse "},
		{RelatedClientID: owner.String(), Type: "self"},
		{RelatedClientID: "not-a-uuid", Type: "parent"},
	}, owner)

	require.Len(t, edges, 1)
	assert.Equal(t, valid, edges[0].RelatedClientID)
	assert.Equal(t, "spouse", edges[0].Type)
}

func TestCreateDTO_Ok(t *testing.T) {
	t.Parallel()

	dto := &client.CreateDTO{FirstName: "Jane", Email: "jane@example.com"}
	fieldErrors, ok := dto.Ok()
	assert.True(t, ok)
	assert.Empty(t, fieldErrors)

	dto = &client.CreateDTO{Email: "not-an-email"}
	fieldErrors, ok = dto.Ok()
	require.False(t, ok)
	assert.Contains(t, fieldErrors, "FirstName")
	assert.Contains(t, fieldErrors, "Email")
}

package reciprocal_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/modules/clients/domain/entities/reciprocal"
)

func TestQueue_FIFO(t *testing.T) {
	t.Parallel()

	var q reciprocal.Queue
	t1 := reciprocal.Task{SourceName: "A", InitialType: "parent"}
	t2 := reciprocal.Task{SourceName: "B", InitialType: "sibling"}
	t3 := reciprocal.Task{SourceName: "C", InitialType: "spouse"}
	q.Enqueue(t1, t2)
	q.Enqueue(t3)

	require.Equal(t, 3, q.Len())

	current, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, t1, current)

	// Current is a peek, not a pop.
	current, ok = q.Current()
	require.True(t, ok)
	assert.Equal(t, t1, current)

	shifted, ok := q.Shift()
	require.True(t, ok)
	assert.Equal(t, t1, shifted)

	current, ok = q.Current()
	require.True(t, ok)
	assert.Equal(t, t2, current)

	q.Shift()
	q.Shift()
	_, ok = q.Current()
	assert.False(t, ok)
	_, ok = q.Shift()
	assert.False(t, ok)
}

func TestDiff_QueuesMissingReciprocal(t *testing.T) {
	t.Parallel()

	target := client.New("John", "Smith")
	saved := client.New("Jane", "Doe").AddRelationship(client.Relationship{
		RelatedClientID: target.ID(),
		Type:            "spouse",
	})

	tasks := reciprocal.Diff(saved, []client.Client{saved, target})
	require.Len(t, tasks, 1)
	assert.Equal(t, saved.ID(), tasks[0].SourceID)
	assert.Equal(t, target.ID(), tasks[0].TargetID)
	assert.Equal(t, "Jane Doe", tasks[0].SourceName)
	assert.Equal(t, "John Smith", tasks[0].TargetName)
	assert.Equal(t, "spouse", tasks[0].InitialType)
}

func TestDiff_SkipsExistingReciprocal(t *testing.T) {
	t.Parallel()

	saved := client.New("Jane", "Doe")
	target := client.New("John", "Smith").AddRelationship(client.Relationship{
		RelatedClientID: saved.ID(),
		Type:            "spouse",
	})
	saved = saved.AddRelationship(client.Relationship{RelatedClientID: target.ID(), Type: "spouse"})

	tasks := reciprocal.Diff(saved, []client.Client{saved, target})
	assert.Empty(t, tasks)
}

func TestDiff_SkipsSelfAndUnknownTargets(t *testing.T) {
	t.Parallel()

	saved := client.New("Jane", "Doe")
	saved = saved.
		AddRelationship(client.Relationship{RelatedClientID: saved.ID(), Type: "self"}).
		AddRelationship(client.Relationship{RelatedClientID: uuid.New(), Type: "parent"})

	tasks := reciprocal.Diff(saved, []client.Client{saved})
	assert.Empty(t, tasks)
}

func TestDiff_OrderFollowsDeclaredEdges(t *testing.T) {
	t.Parallel()

	a := client.New("A", "One")
	b := client.New("B", "Two")
	saved := client.New("Jane", "Doe").
		AddRelationship(client.Relationship{RelatedClientID: a.ID(), Type: "parent"}).
		AddRelationship(client.Relationship{RelatedClientID: b.ID(), Type: "sibling"})

	tasks := reciprocal.Diff(saved, []client.Client{saved, a, b})
	require.Len(t, tasks, 2)
	assert.Equal(t, a.ID(), tasks[0].TargetID)
	assert.Equal(t, b.ID(), tasks[1].TargetID)
}

package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/habitloop/habitloop/internal/shared/domain"
)

type testAggregate struct {
	domain.BaseAggregateRoot
	Name string
}

func newTestAggregate(name string) *testAggregate {
	return &testAggregate{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		Name:              name,
	}
}

type testEvent struct {
	domain.BaseEvent
}

func newTestEvent(aggregateID uuid.UUID) testEvent {
	return testEvent{
		BaseEvent: domain.NewBaseEvent(aggregateID, "TestAggregate", "test.aggregate.created"),
	}
}

func TestNewBaseAggregateRoot(t *testing.T) {
	agg := domain.NewBaseAggregateRoot()

	assert.NotEqual(t, uuid.Nil, agg.ID())
	assert.Empty(t, agg.DomainEvents())
	assert.False(t, agg.CreatedAt().IsZero())
}

func TestBaseAggregateRoot_AddDomainEvent(t *testing.T) {
	agg := newTestAggregate("Test")
	event := newTestEvent(agg.ID())

	agg.AddDomainEvent(event)

	events := agg.DomainEvents()
	assert.Len(t, events, 1)
	assert.Equal(t, event.EventID(), events[0].EventID())
	assert.Equal(t, agg.ID(), events[0].AggregateID())
	assert.Equal(t, "test.aggregate.created", events[0].EventName())
}

func TestBaseAggregateRoot_ClearDomainEvents(t *testing.T) {
	agg := newTestAggregate("Test")
	agg.AddDomainEvent(newTestEvent(agg.ID()))
	agg.AddDomainEvent(newTestEvent(agg.ID()))

	assert.Len(t, agg.DomainEvents(), 2)

	agg.ClearDomainEvents()

	assert.Empty(t, agg.DomainEvents())
}

func TestBaseEntity_Touch(t *testing.T) {
	agg := newTestAggregate("Test")
	before := agg.UpdatedAt()

	agg.Touch()

	assert.False(t, agg.UpdatedAt().Before(before))
}

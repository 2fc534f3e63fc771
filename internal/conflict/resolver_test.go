package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/platesync/internal/models"
)

func TestResolve_ServerNewer(t *testing.T) {
	resolver := NewLWW()

	client := &models.MealRecord{ID: "m1", Name: "local", UpdatedAt: 1000}
	server := &models.MealRecord{ID: "m1", Name: "remote", UpdatedAt: 2000}

	res := resolver.Resolve(client, server)

	assert.Equal(t, OutcomeConflict, res.Outcome)
	assert.False(t, res.Accepted())
	require.NotNil(t, res.Record)
	assert.Equal(t, "remote", res.Record.Name)
}

func TestResolve_ClientNewer(t *testing.T) {
	resolver := NewLWW()

	client := &models.MealRecord{ID: "m1", Name: "local", UpdatedAt: 3000}
	server := &models.MealRecord{ID: "m1", Name: "remote", UpdatedAt: 2000}

	res := resolver.Resolve(client, server)

	assert.Equal(t, OutcomeAccepted, res.Outcome)
	assert.True(t, res.Accepted())
	require.NotNil(t, res.Record)
	assert.Equal(t, "local", res.Record.Name)
}

// Равные timestamps разрешаются в пользу клиента - правило легко
// перепутать, поэтому оно закреплено отдельным тестом.
func TestResolve_EqualTimestamps_ClientWins(t *testing.T) {
	resolver := NewLWW()

	client := &models.MealRecord{ID: "m1", Name: "local", UpdatedAt: 2000}
	server := &models.MealRecord{ID: "m1", Name: "remote", UpdatedAt: 2000}

	res := resolver.Resolve(client, server)

	assert.Equal(t, OutcomeAccepted, res.Outcome)
	assert.Equal(t, "local", res.Record.Name)
}

func TestResolve_MissingTimestampNeverWins(t *testing.T) {
	resolver := NewLWW()

	// У клиента нет timestamp (epoch 0), у сервера есть
	client := &models.MealRecord{ID: "m1", Name: "local"}
	server := &models.MealRecord{ID: "m1", Name: "remote", UpdatedAt: 1}

	res := resolver.Resolve(client, server)
	assert.Equal(t, OutcomeConflict, res.Outcome)

	// Оба без timestamp - ничья, клиент побеждает
	res = resolver.Resolve(client, &models.MealRecord{ID: "m1", Name: "remote"})
	assert.Equal(t, OutcomeAccepted, res.Outcome)
}

func TestResolve_NilRecords(t *testing.T) {
	resolver := NewLWW()

	// nil трактуется как отсутствующая версия с epoch 0
	res := resolver.Resolve(nil, &models.MealRecord{ID: "m1", UpdatedAt: 1})
	assert.Equal(t, OutcomeConflict, res.Outcome)

	res = resolver.Resolve(&models.MealRecord{ID: "m1"}, nil)
	assert.Equal(t, OutcomeAccepted, res.Outcome)
}

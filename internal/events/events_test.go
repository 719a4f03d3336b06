package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	assignee := int64(7)
	assigneeName := "Ada"
	snapshot := domain.TaskSnapshot{
		ID:               42,
		Title:            "Ship it",
		Status:           domain.TaskStatusInProgress,
		ProjectID:        3,
		ProjectName:      "Website",
		AssignedUserID:   &assignee,
		AssignedUserName: &assigneeName,
	}

	data, err := Encode(TaskAssigned, snapshot)
	require.NoError(t, err)

	// The wire shape uses camelCase keys under name/payload.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"TaskAssigned"`, string(raw["name"]))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw["payload"], &payload))
	assert.EqualValues(t, 42, payload["id"])
	assert.EqualValues(t, 7, payload["assignedUserId"])
	assert.Equal(t, "Website", payload["projectName"])
	assert.NotContains(t, payload, "description")
}

func TestEncode_UnknownName(t *testing.T) {
	t.Parallel()

	_, err := Encode(Name("TaskDeleted"), domain.TaskSnapshot{ID: 1})
	assert.Error(t, err)
}

func TestNameValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskUpdated.Valid())
	assert.True(t, TaskAssigned.Valid())
	assert.False(t, Name("taskupdated").Valid())
}

func TestPublisherFunc(t *testing.T) {
	t.Parallel()

	var got Name
	p := PublisherFunc(func(_ context.Context, name Name, _ domain.TaskSnapshot) { got = name })
	p.Publish(context.Background(), TaskUpdated, domain.TaskSnapshot{})
	assert.Equal(t, TaskUpdated, got)

	Nop{}.Publish(context.Background(), TaskUpdated, domain.TaskSnapshot{})
}

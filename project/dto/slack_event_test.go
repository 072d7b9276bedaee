package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackEventRequest_EventAbsent(t *testing.T) {
	var req SlackEventRequest
	require.NoError(t, json.Unmarshal([]byte(`{"type":"url_verification","challenge":"abc"}`), &req))

	assert.Nil(t, req.Event)
	assert.Equal(t, "abc", req.Challenge)
}

func TestSlackEventRequest_EventPresent(t *testing.T) {
	body := `{"type":"event_callback","event":{"type":"app_mention","text":"<@U123> hello","channel":"C1","ts":"100.1","thread_ts":"99.9"}}`

	var req SlackEventRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.Event)
	assert.Equal(t, "C1", req.Event.Channel)
	assert.Equal(t, "100.1", req.Event.Timestamp)
	assert.Equal(t, "99.9", req.Event.ThreadTs)
	assert.Empty(t, req.Challenge)
}

func TestSlackEvent_IsFromBot(t *testing.T) {
	assert.False(t, (&SlackEvent{User: "U1"}).IsFromBot())
	assert.True(t, (&SlackEvent{BotID: "B1"}).IsFromBot())
	assert.True(t, (&SlackEvent{SubType: "bot_message"}).IsFromBot())
}

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"productlab/studyhub/internal/events"
	"productlab/studyhub/internal/model"
)

func TestSignupAcceptedEvent_Marshal(t *testing.T) {
	signup := &model.StudySignup{ID: 9, StudyID: 3, Email: "ada@example.com"}
	at := time.Date(2026, 4, 2, 15, 4, 5, 0, time.FixedZone("CEST", 2*60*60))

	b, err := json.Marshal(events.NewSignupAcceptedEvent(signup, true, at))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "signup.accepted", decoded["event_type"])
	require.Equal(t, float64(9), decoded["signup_id"])
	require.Equal(t, float64(3), decoded["study_id"])
	require.Equal(t, true, decoded["created"])
	require.Equal(t, "2026-04-02T13:04:05Z", decoded["accepted_at"])
}

func TestNoopPublisher(t *testing.T) {
	var p events.EventPublisher = events.NoopPublisher{}
	require.NoError(t, p.PublishSignupAccepted(context.Background(), &model.StudySignup{}, false))
	p.Close()
}

package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/pipeline"
)

func TestEventHubBroadcast(t *testing.T) {
	hub := NewEventHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(nethttp.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	event := pipeline.ChunkEvent{
		CallID:      "call-1",
		Phase:       models.PhaseUrgency,
		AgentActive: true,
	}
	hub.Observer()(event)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var received pipeline.ChunkEvent
	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, "call-1", received.CallID)
	assert.Equal(t, models.PhaseUrgency, received.Phase)
	assert.True(t, received.AgentActive)
}

func TestEventHubClientDisconnect(t *testing.T) {
	hub := NewEventHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(nethttp.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestEventHubObserverBeforeRunIsSafe(t *testing.T) {
	hub := NewEventHub(testLogger())

	assert.NotPanics(t, func() {
		hub.Observer()(pipeline.ChunkEvent{CallID: "early"})
	})
	assert.Equal(t, 0, hub.ClientCount())
}

package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishDeliversToRegisteredClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	first := &Client{hub: hub, adminID: "a1", send: make(chan []byte, 1)}
	second := &Client{hub: hub, adminID: "a2", send: make(chan []byte, 1)}
	require.True(t, hub.Register(first))
	require.True(t, hub.Register(second))

	hub.Publish("contact.created", map[string]string{"name": "A"})

	for _, c := range []*Client{first, second} {
		select {
		case raw := <-c.send:
			var ev struct {
				Type string            `json:"type"`
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &ev))
			assert.Equal(t, "contact.created", ev.Type)
			assert.Equal(t, "A", ev.Data["name"])
		case <-time.After(time.Second):
			t.Fatalf("client %s received nothing", c.adminID)
		}
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	client := &Client{hub: hub, adminID: "a1", send: make(chan []byte, 1)}
	require.True(t, hub.Register(client))
	hub.Unregister(client)

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_PublishWithoutRunnerDoesNotBlock(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish("media.deleted", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
}

func TestHub_RegisterAfterStopFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	assert.False(t, hub.Register(&Client{hub: hub, adminID: "a1", send: make(chan []byte, 1)}))
}

func TestHub_SlowClientConnectionIsClosed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	serverConns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	defer srv.Close()

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer peer.Close()

	// Клиент без буфера и без writePump: любое событие его переполняет.
	slow := &Client{hub: hub, conn: <-serverConns, adminID: "a1", send: make(chan []byte)}
	require.True(t, hub.Register(slow))

	hub.Publish("media.uploaded", map[string]string{"id": "1"})

	require.NoError(t, peer.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = peer.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseAbnormalClosure), "unexpected error: %v", err)
}

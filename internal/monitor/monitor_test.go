package monitor

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"roverctl/models"
)

func dialTestServer(t *testing.T) (*Hub, *httptest.Server, *websocket.Conn) {
	t.Helper()
	hub := NewHub()
	ts := httptest.NewServer(NewServer(hub).Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	// Registration happens in the handler goroutine; wait for it.
	waitFor(t, func() bool { return hub.Count() == 1 })
	return hub, ts, conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPublishReachesClient(t *testing.T) {
	hub, _, conn := dialTestServer(t)

	sent := models.Event{
		Kind:      models.EventCommand,
		Command:   models.Forward.String(),
		Timestamp: time.Now().UTC(),
	}
	hub.Publish(sent)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got models.Event
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal %q: %v", payload, err)
	}
	if got.Kind != models.EventCommand || got.Command != "Forward" {
		t.Errorf("got %+v, want kind=command command=Forward", got)
	}
}

func TestClientMessagesAreIgnored(t *testing.T) {
	hub, _, conn := dialTestServer(t)

	// A client trying to drive the rover gets nothing for it; the stream
	// just keeps flowing.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"W"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	hub.Publish(models.Event{Kind: models.EventStatus, Text: "still here", Timestamp: time.Now()})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(payload), "still here") {
		t.Errorf("payload %q, want the published status event", payload)
	}
}

func TestDisconnectedClientIsRemoved(t *testing.T) {
	hub, _, conn := dialTestServer(t)

	_ = conn.Close()
	waitFor(t, func() bool { return hub.Count() == 0 })
}

func TestIndexPageServed(t *testing.T) {
	hub := NewHub()
	ts := httptest.NewServer(NewServer(hub).Handler())
	defer ts.Close()

	res, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
}

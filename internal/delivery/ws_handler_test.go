package delivery

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Vovarama1992/memo_coach/internal/session"
)

func TestEventsStreamSnapshots(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/sessions/" + id + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() outboundMessage[session.Snapshot] {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg outboundMessage[session.Snapshot]
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		return msg
	}

	first := read()
	if first.Type != "snapshot" || first.Payload.Screen != session.ScreenSetup {
		t.Fatalf("initial message = %+v", first)
	}

	f.startLesson(t, id)
	next := read()
	if next.Payload.Screen != session.ScreenPractice || next.Payload.Lesson == nil {
		t.Fatalf("after lesson = %+v", next.Payload.State)
	}
}

func TestEventsUnknownSession(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodGet, "/sessions/missing/events", "", nil)
	if resp.StatusCode != http.StatusNotFound || body["error"] != "not_found" {
		t.Fatalf("unknown session: %d %v", resp.StatusCode, body)
	}
}

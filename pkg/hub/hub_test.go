package hub

import (
	"testing"
	"time"
)

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

func TestHubBroadcastDelivers(t *testing.T) {
	h := New("test")
	go h.Run()

	a := &Client{hub: h, send: make(chan Message, 4)}
	b := &Client{hub: h, send: make(chan Message, 4)}
	h.register <- a
	h.register <- b
	waitFor(t, func() bool { return h.ClientCount() == 2 })

	if err := h.BroadcastJSON(map[string]string{"status": "ok"}); err != nil {
		t.Fatalf("BroadcastJSON: %v", err)
	}

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			if msg.Type != JSONMessage {
				t.Errorf("message type = %v, want JSON", msg.Type)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHubDropsSlowClientUnderCount(t *testing.T) {
	h := New("test")
	go h.Run()

	// No buffer and no reader: the first broadcast drops this client.
	slow := &Client{hub: h, send: make(chan Message)}
	h.register <- slow
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	// Hammer ClientCount concurrently with the drop so the race
	// detector exercises both lock paths.
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				h.ClientCount()
			}
		}
	}()

	h.BroadcastBinary([]byte{0xff, 0xd8})
	waitFor(t, func() bool { return h.ClientCount() == 0 })
	close(done)

	if _, ok := <-slow.send; ok {
		t.Error("send channel should be closed after drop")
	}
}

package listener

import (
	"testing"
	"time"
)

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent(`{"id":"3f1c","session_id":"s1","reason":"reset","sport":"hockey","ts":1760000000}`)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if ev.ID != "3f1c" || ev.SessionID != "s1" || ev.Reason != "reset" || ev.Sport != "hockey" || ev.Timestamp != 1760000000 {
		t.Errorf("event = %+v", ev)
	}

	for _, bad := range []string{``, `not json`, `{"session_id":"s1"}`} {
		if _, err := ParseEvent(bad); err == nil {
			t.Errorf("ParseEvent(%q) = nil error", bad)
		}
	}
}

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		name      string
		prev      time.Duration
		connected bool
		want      time.Duration
	}{
		{"first failure", 0, false, reconnectBackoff},
		{"second failure doubles", reconnectBackoff, false, 2 * reconnectBackoff},
		{"capped", 20 * time.Second, false, maxReconnect},
		{"stays capped", maxReconnect, false, maxReconnect},
		{"connected session resets", maxReconnect, true, reconnectBackoff},
		{"first drop after connect", 0, true, reconnectBackoff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryDelay(tt.prev, tt.connected); got != tt.want {
				t.Errorf("retryDelay(%v, %v) = %v, want %v", tt.prev, tt.connected, got, tt.want)
			}
		})
	}
}

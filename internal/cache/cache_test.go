package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(true)
	etag := c.Set("archive:20", []byte(`[1,2]`), time.Minute)

	data, got, ok := c.Get("archive:20")
	if !ok || string(data) != `[1,2]` || got != etag {
		t.Fatalf("Get = %q, %q, %v", data, got, ok)
	}
	if _, _, ok := c.Get("archive:50"); ok {
		t.Fatalf("unexpected hit for missing key")
	}
}

func TestExpiredEntryMisses(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)
	if _, _, ok := c.Get("k"); ok {
		t.Fatalf("expired entry returned")
	}
	c.evict()
	if n := c.Stats()["total_keys"]; n != 0 {
		t.Fatalf("total_keys after evict = %v", n)
	}
}

func TestDisabledCache(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	if etag != ComputeETag([]byte("v")) {
		t.Fatalf("disabled Set should still return the ETag")
	}
	if _, _, ok := c.Get("k"); ok {
		t.Fatalf("disabled cache returned a hit")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(true)
	c.Set("archive:10", []byte("a"), time.Minute)
	c.Set("archive:20", []byte("b"), time.Minute)
	c.Set("options", []byte("c"), time.Minute)

	if n := c.InvalidatePrefix("archive:"); n != 2 {
		t.Fatalf("invalidated %d, want 2", n)
	}
	if _, _, ok := c.Get("options"); !ok {
		t.Fatalf("unrelated key invalidated")
	}
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("board"))
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{etag, true},
		{`W/"other", ` + etag, true},
		{`W/"other"`, false},
	}
	for _, tt := range tests {
		if got := CheckETagMatch(tt.header, etag); got != tt.want {
			t.Errorf("CheckETagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

package main

import (
	"testing"
	"time"

	cursorlet "github.com/Paranoid-AF/cursorlet"
)

func cacheRequest() *cursorlet.Request {
	return &cursorlet.Request{
		RequestID: 1,
		SessionID: "s1",
		CurrentFile: cursorlet.CurrentFile{
			FileName:           "a.go",
			ContentAboveCursor: "package a\n",
		},
	}
}

func TestResponseCacheHitAndMiss(t *testing.T) {
	rc := NewResponseCache(time.Minute, 10)
	defer rc.Close()

	req := cacheRequest()
	if got := rc.Get(req); got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}

	payload := &cursorlet.TaskPayload{ID: "t1"}
	rc.Set(req, payload)

	if got := rc.Get(req); got != payload {
		t.Errorf("expected cached payload, got %+v", got)
	}
	if rc.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", rc.Len())
	}
}

func TestResponseCacheKeyIgnoresIdentity(t *testing.T) {
	rc := NewResponseCache(time.Minute, 10)
	defer rc.Close()

	rc.Set(cacheRequest(), &cursorlet.TaskPayload{ID: "t1"})

	other := cacheRequest()
	other.RequestID = 99
	other.SessionID = "s2"
	other.Stream = "true"
	if got := rc.Get(other); got == nil || got.ID != "t1" {
		t.Errorf("expected hit regardless of request/session/stream, got %+v", got)
	}
}

func TestResponseCacheKeyDistinguishesContent(t *testing.T) {
	base := cacheRequest()

	variants := map[string]func(r *cursorlet.Request){
		"file name":   func(r *cursorlet.Request) { r.CurrentFile.FileName = "b.go" },
		"above":       func(r *cursorlet.Request) { r.CurrentFile.ContentAboveCursor += "x" },
		"below":       func(r *cursorlet.Request) { r.CurrentFile.ContentBelowCursor = "}" },
		"intent":      func(r *cursorlet.Request) { r.Intent = cursorlet.IntentGeneration },
		"type":        func(r *cursorlet.Request) { r.GenerationType = "comment" },
		"instruction": func(r *cursorlet.Request) { r.UserInstruction = "do it" },
		"context": func(r *cursorlet.Request) {
			r.Context = []cursorlet.ContextItem{{Type: "file", Name: "x", Content: "y"}}
		},
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			r := cacheRequest()
			mutate(r)
			if requestKey(r) == requestKey(base) {
				t.Errorf("expected %s to change the cache key", name)
			}
		})
	}
}

func TestResponseCacheExpires(t *testing.T) {
	rc := NewResponseCache(20*time.Millisecond, 10)
	defer rc.Close()

	req := cacheRequest()
	rc.Set(req, &cursorlet.TaskPayload{ID: "t1"})
	time.Sleep(60 * time.Millisecond)

	if got := rc.Get(req); got != nil {
		t.Errorf("expected expired entry, got %+v", got)
	}
}

func TestResponseCacheCapacity(t *testing.T) {
	rc := NewResponseCache(time.Minute, 2)
	defer rc.Close()

	for _, name := range []string{"a.go", "b.go", "c.go"} {
		req := cacheRequest()
		req.CurrentFile.FileName = name
		rc.Set(req, &cursorlet.TaskPayload{ID: name})
	}
	if rc.Len() != 2 {
		t.Errorf("expected capacity-bounded 2 entries, got %d", rc.Len())
	}
}

func TestResponseCacheDisabled(t *testing.T) {
	rc := NewResponseCache(0, 10)
	if rc != nil {
		t.Fatal("expected nil cache for zero TTL")
	}

	// A nil cache is usable and never hits.
	req := cacheRequest()
	rc.Set(req, &cursorlet.TaskPayload{ID: "t1"})
	if got := rc.Get(req); got != nil {
		t.Errorf("expected miss on disabled cache, got %+v", got)
	}
	rc.Close()
}

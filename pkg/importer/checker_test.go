package importer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statusServer(t *testing.T, code int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code/100 == 3 {
			w.Header().Set("Location", "https://example.com/moved")
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckAllRecordsStatus(t *testing.T) {
	sdb := tempSourceDB(t)
	seed(t, sdb,
		&fakeAdapter{id: "ok", url: statusServer(t, http.StatusOK).URL},
		&fakeAdapter{id: "missing", url: statusServer(t, http.StatusNotFound).URL},
		&fakeAdapter{id: "broken", url: statusServer(t, http.StatusInternalServerError).URL},
		&fakeAdapter{id: "moved", url: statusServer(t, http.StatusMovedPermanently).URL},
		&fakeAdapter{id: "dead", url: "http://127.0.0.1:1"},
		&fakeAdapter{id: "local", url: "/srv/dicts/local.csv"},
	)

	NewChecker(sdb, quietLogger(), time.Hour).CheckAll(context.Background())

	got := make(map[string]Source)
	for _, src := range mustSources(t, sdb) {
		got[src.AdapterID] = src
	}
	for id, want := range map[string]int{"ok": 200, "missing": 404, "broken": 500, "moved": 301, "dead": 0} {
		src := got[id]
		if src.LastStatus == nil || *src.LastStatus != want {
			t.Errorf("%s: status = %v, want %d", id, src.LastStatus, want)
		}
	}
	if src := got["dead"]; src.LastError == nil || *src.LastError == "" {
		t.Error("dead: expected a network error message")
	}
	if src := got["local"]; src.LastCheck != nil {
		t.Errorf("local path was probed: %+v", src)
	}
}

func TestCheckAllEmptyDB(t *testing.T) {
	NewChecker(tempSourceDB(t), quietLogger(), time.Hour).CheckAll(context.Background())
}

func TestCheckerStartStopsWithContext(t *testing.T) {
	sdb := tempSourceDB(t)
	seed(t, sdb, &fakeAdapter{id: "ok", url: statusServer(t, http.StatusOK).URL})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewChecker(sdb, quietLogger(), time.Hour).Start(ctx)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for {
		if src := mustSources(t, sdb)[0]; src.LastStatus != nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first check never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

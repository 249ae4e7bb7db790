package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func init() {
	retryInterval = 5 * time.Millisecond
}

func TestDownloadFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello world"))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "test.txt")
	if err := downloadFile(context.Background(), ts.URL, dest); err != nil {
		t.Fatalf("downloadFile: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello world" {
		t.Errorf("content = %q", data)
	}
}

func TestDownloadFileRetries(t *testing.T) {
	var attempts atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < downloadAttempts {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	if err := downloadFile(context.Background(), ts.URL, filepath.Join(t.TempDir(), "retry.txt")); err != nil {
		t.Fatalf("downloadFile with retries: %v", err)
	}
	if n := attempts.Load(); n != downloadAttempts {
		t.Errorf("attempts = %d, want %d", n, downloadAttempts)
	}
}

func TestDownloadFileGivesUp(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		attempts int32
	}{
		{"server error retried", http.StatusInternalServerError, downloadAttempts},
		{"client error not retried", http.StatusNotFound, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				w.WriteHeader(tt.code)
			}))
			defer ts.Close()

			if err := downloadFile(context.Background(), ts.URL, filepath.Join(t.TempDir(), "f")); err == nil {
				t.Fatal("expected error")
			}
			if n := attempts.Load(); n != tt.attempts {
				t.Errorf("attempts = %d, want %d", n, tt.attempts)
			}
		})
	}
}

func TestLocalCopy(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "words.csv")
	if err := os.WriteFile(local, []byte("expression\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := localCopy(context.Background(), local, dir); err != nil || got != local {
		t.Errorf("localCopy(local) = %q, %v", got, err)
	}
	if _, err := localCopy(context.Background(), filepath.Join(dir, "missing.csv"), dir); err == nil {
		t.Error("localCopy(missing) succeeded")
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("expression\n"))
	}))
	defer ts.Close()
	got, err := localCopy(context.Background(), ts.URL+"/dl/names.csv?token=x", dir)
	if err != nil {
		t.Fatalf("localCopy(url): %v", err)
	}
	if filepath.Base(got) != "names.csv" {
		t.Errorf("downloaded to %q, want names.csv", got)
	}
}

package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("jar-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "Sodium-1.20.4.jar")
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewHTTPFetcher(srv.Client(), "modrow-test")
	if err := f.Fetch(context.Background(), srv.URL+"/sodium.jar", dest); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "jar-bytes" {
		t.Errorf("content = %q, want %q", data, "jar-bytes")
	}
	if gotUA != "modrow-test" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "modrow-test")
	}
	assertNoTempFiles(t, dir)
}

func TestHTTPFetcher_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "Sodium-1.20.4.jar")

	err := NewHTTPFetcher(srv.Client(), "").Fetch(context.Background(), srv.URL, dest)
	if err == nil {
		t.Fatal("Fetch() should fail on non-200 status")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("destination should not exist after failed fetch")
	}
	assertNoTempFiles(t, dir)
}

func TestHTTPFetcher_MissingDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "missing", "a.jar")
	if err := NewHTTPFetcher(srv.Client(), "").Fetch(context.Background(), srv.URL, dest); err == nil {
		t.Error("Fetch() should fail when the directory does not exist")
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, tempPrefix+"*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

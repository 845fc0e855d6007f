package modrinth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/google/go-cmp/cmp"
)

const versionsJSON = `[
  {
    "id": "v2",
    "project_id": "AANobbMI",
    "version_number": "0.5.8",
    "game_versions": ["1.20.4"],
    "loaders": ["fabric", "quilt"],
    "files": [
      {"filename": "sodium-0.5.8-sources.jar", "url": "https://cdn.example/sources.jar", "primary": false},
      {"filename": "sodium-0.5.8.jar", "url": "https://cdn.example/sodium-0.5.8.jar", "primary": true}
    ]
  },
  {
    "id": "v1",
    "version_number": "0.5.7",
    "game_versions": ["1.20.3"],
    "loaders": ["fabric"],
    "files": []
  }
]`

func newTestServer(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var userAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/collection/col1", func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"id":"col1","name":"Test","projects":["AANobbMI","P7dR8mSH"]}`))
	})
	mux.HandleFunc("GET /v3/collection/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /v2/project/AANobbMI", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"AANobbMI","slug":"sodium","title":"Sodium"}`))
	})
	mux.HandleFunc("GET /v2/project/AANobbMI/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(versionsJSON))
	})
	mux.HandleFunc("GET /v2/project/garbage/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &userAgent
}

func TestClient_FetchCollection(t *testing.T) {
	srv, ua := newTestServer(t)
	c := New(Options{BaseURL: srv.URL + "/", HTTPClient: srv.Client(), UserAgent: "modrow-test"})

	entries, err := c.FetchCollection(context.Background(), "col1")
	if err != nil {
		t.Fatalf("FetchCollection() error: %v", err)
	}
	want := []core.CatalogEntry{"AANobbMI", "P7dR8mSH"}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("FetchCollection() mismatch (-want +got):\n%s", diff)
	}
	if *ua != "modrow-test" {
		t.Errorf("User-Agent = %q, want %q", *ua, "modrow-test")
	}
}

func TestClient_FetchCollection_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})

	for _, id := range []string{"missing", "broken"} {
		_, err := c.FetchCollection(context.Background(), id)
		if !errors.Is(err, core.ErrCollectionNotFound) {
			t.Errorf("FetchCollection(%q) error = %v, want ErrCollectionNotFound", id, err)
		}
	}
}

func TestClient_FetchCollection_TransportError(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Close()
	c := New(Options{BaseURL: srv.URL})

	_, err := c.FetchCollection(context.Background(), "col1")
	if !errors.Is(err, core.ErrCollectionNotFound) {
		t.Errorf("FetchCollection() error = %v, want ErrCollectionNotFound", err)
	}
}

func TestClient_FetchPackageMetadata(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})

	got := c.FetchPackageMetadata(context.Background(), "AANobbMI")
	if got.Title != "Sodium" {
		t.Errorf("Title = %q, want %q", got.Title, "Sodium")
	}

	got = c.FetchPackageMetadata(context.Background(), "unknown")
	if got.Title != core.UnknownName || got.ID != "unknown" {
		t.Errorf("FetchPackageMetadata(unknown) = %+v, want placeholder", got)
	}
}

func TestClient_FetchBuildList(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})

	builds := c.FetchBuildList(context.Background(), "AANobbMI")
	want := []core.BuildArtifact{
		{
			ID:            "v2",
			ProjectID:     "AANobbMI",
			VersionNumber: "0.5.8",
			GameVersions:  []string{"1.20.4"},
			Loaders:       []string{"fabric", "quilt"},
			Files: []core.File{
				{Filename: "sodium-0.5.8-sources.jar", URL: "https://cdn.example/sources.jar"},
				{Filename: "sodium-0.5.8.jar", URL: "https://cdn.example/sodium-0.5.8.jar", Primary: true},
			},
		},
		{
			ID:            "v1",
			ProjectID:     "AANobbMI",
			VersionNumber: "0.5.7",
			GameVersions:  []string{"1.20.3"},
			Loaders:       []string{"fabric"},
			Files:         []core.File{},
		},
	}
	if diff := cmp.Diff(want, builds); diff != "" {
		t.Errorf("FetchBuildList() mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_FetchBuildList_Unavailable(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})

	for _, id := range []string{"missing", "garbage"} {
		if got := c.FetchBuildList(context.Background(), id); len(got) != 0 {
			t.Errorf("FetchBuildList(%q) = %v, want empty", id, got)
		}
	}
}

func TestGetJSON_Statuses(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
	ctx := context.Background()

	if res := getJSON[projectResponse](ctx, c, "/v2/project/AANobbMI"); res.status != statusOK || res.err != nil {
		t.Errorf("ok path: status = %d, err = %v", res.status, res.err)
	}
	if res := getJSON[projectResponse](ctx, c, "/v2/project/nope"); res.status != statusEmpty {
		t.Errorf("404 path: status = %d, want statusEmpty", res.status)
	}
	if res := getJSON[collectionResponse](ctx, c, "/v3/collection/broken"); res.status != statusFailed || res.err == nil {
		t.Errorf("500 path: status = %d, err = %v", res.status, res.err)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/barysiuk/modrow/cmd/modrow/cmd"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"modrow": func() {
			if err := cmd.Execute(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	})
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		Setup: func(e *testscript.Env) error {
			// Set HOME to WORK so ~/.modrow/ is created inside the temp dir
			e.Vars = append(e.Vars, "HOME="+e.WorkDir)

			srv := httptest.NewServer(fakeModrinth())
			e.Defer(srv.Close)
			e.Vars = append(e.Vars, "MODROW_API_URL="+srv.URL)
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// file-contains asserts that a file contains (or doesn't contain) a substring.
			// Usage: [!] file-contains <path> <substring>
			"file-contains": cmdFileContains,

			// dir-not-exists asserts that a directory does not exist.
			// Usage: [!] dir-not-exists <path>
			"dir-not-exists": cmdDirNotExists,
		},
	})
}

// fakeProject is a project served by fakeModrinth.
type fakeProject struct {
	title  string
	builds []fakeBuild
}

type fakeBuild struct {
	version string
	game    []string
	loaders []string
	file    string // empty means the build has no primary file
}

// fakeCollections and fakeProjects describe the catalog the scripts run against.
var (
	fakeCollections = map[string][]string{
		"col1":    {"AANobbMI", "gvQqBUqZ"},
		"shaders": {"HVnmMxH1"},
		"broken":  {"AANobbMI", "nofile00"},
	}
	fakeProjects = map[string]fakeProject{
		"AANobbMI": {title: "Sodium", builds: []fakeBuild{
			{version: "0.6.0", game: []string{"1.21"}, loaders: []string{"fabric", "quilt"}, file: "sodium-0.6.0.jar"},
			{version: "0.5.8", game: []string{"1.20.4"}, loaders: []string{"fabric", "quilt"}, file: "sodium-0.5.8.jar"},
		}},
		"gvQqBUqZ": {title: "Lithium", builds: []fakeBuild{
			{version: "0.12.1", game: []string{"1.20.4"}, loaders: []string{"fabric"}, file: "lithium-0.12.1.jar"},
		}},
		"HVnmMxH1": {title: "Complementary Shaders", builds: []fakeBuild{
			{version: "r5.2", game: []string{"1.20.4", "1.21"}, loaders: []string{"iris", "optifine"}, file: "ComplementaryReimagined_r5.2.zip"},
		}},
		"nofile00": {title: "Broken Mod", builds: []fakeBuild{
			{version: "1.0", game: []string{"1.20.4"}, loaders: []string{"fabric"}},
		}},
	}
)

// fakeModrinth serves the subset of the Modrinth API modrow uses. Downloaded
// files contain "content of <file name>".
func fakeModrinth() http.Handler {
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/collection/{id}", func(w http.ResponseWriter, r *http.Request) {
		projects, ok := fakeCollections[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"id": r.PathValue("id"), "name": "Test", "projects": projects})
	})
	mux.HandleFunc("GET /v2/project/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := fakeProjects[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"id": r.PathValue("id"), "slug": strings.ToLower(p.title), "title": p.title})
	})
	mux.HandleFunc("GET /v2/project/{id}/version", func(w http.ResponseWriter, r *http.Request) {
		p, ok := fakeProjects[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		versions := make([]map[string]any, 0, len(p.builds))
		for _, b := range p.builds {
			files := []map[string]any{}
			if b.file != "" {
				files = append(files, map[string]any{
					"filename": b.file,
					"url":      "http://" + r.Host + "/cdn/" + b.file,
					"primary":  true,
				})
			}
			versions = append(versions, map[string]any{
				"id":             r.PathValue("id") + "-" + b.version,
				"project_id":     r.PathValue("id"),
				"version_number": b.version,
				"game_versions":  b.game,
				"loaders":        b.loaders,
				"files":          files,
			})
		}
		writeJSON(w, versions)
	})
	mux.HandleFunc("GET /cdn/{file}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, "content of %s\n", r.PathValue("file"))
	})
	return mux
}

// cmdFileContains checks if a file contains a substring.
func cmdFileContains(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: file-contains <path> <substring>")
	}
	path := ts.MkAbs(args[0])
	substr := args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		ts.Fatalf("reading %s: %v", args[0], err)
	}

	contains := strings.Contains(string(data), substr)
	if neg {
		if contains {
			ts.Fatalf("file %s contains %q (expected not to)", args[0], substr)
		}
	} else {
		if !contains {
			ts.Fatalf("file %s does not contain %q\nContent:\n%s", args[0], substr, string(data))
		}
	}
}

// cmdDirNotExists checks that a directory does not exist.
func cmdDirNotExists(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: dir-not-exists <path>")
	}
	path := ts.MkAbs(args[0])
	_, err := os.Stat(path)
	doesNotExist := os.IsNotExist(err)

	if neg {
		// ! dir-not-exists == dir exists
		if doesNotExist {
			ts.Fatalf("%s does not exist (expected it to exist)", args[0])
		}
	} else {
		if !doesNotExist {
			ts.Fatalf("%s exists (expected it not to)", args[0])
		}
	}
}

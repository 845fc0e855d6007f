package modrinth

import "github.com/barysiuk/modrow/internal/core"

// collectionResponse is the body of GET /v3/collection/{id}.
type collectionResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Projects []string `json:"projects"`
}

// projectResponse is the body of GET /v2/project/{id}.
type projectResponse struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// versionResponse is one element of GET /v2/project/{id}/version.
type versionResponse struct {
	ID            string         `json:"id"`
	ProjectID     string         `json:"project_id"`
	VersionNumber string         `json:"version_number"`
	GameVersions  []string       `json:"game_versions"`
	Loaders       []string       `json:"loaders"`
	Files         []fileResponse `json:"files"`
}

type fileResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Primary  bool   `json:"primary"`
}

func (v versionResponse) toBuild(packageID string) core.BuildArtifact {
	b := core.BuildArtifact{
		ID:            v.ID,
		ProjectID:     v.ProjectID,
		VersionNumber: v.VersionNumber,
		GameVersions:  v.GameVersions,
		Loaders:       v.Loaders,
		Files:         make([]core.File, 0, len(v.Files)),
	}
	if b.ProjectID == "" {
		b.ProjectID = packageID
	}
	for _, f := range v.Files {
		b.Files = append(b.Files, core.File{Filename: f.Filename, URL: f.URL, Primary: f.Primary})
	}
	return b
}

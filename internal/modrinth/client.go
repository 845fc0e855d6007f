// Package modrinth is a thin typed accessor over the Modrinth HTTP API.
// It reads collections, project metadata, and project version lists and
// holds no business logic.
package modrinth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/charmbracelet/log"
)

// Options configures a Client.
type Options struct {
	BaseURL    string       // defaults to core.DefaultAPIBaseURL
	HTTPClient *http.Client // defaults to http.DefaultClient
	UserAgent  string
	Logger     *log.Logger // nil discards log output
}

// Client reads from the Modrinth API. It is immutable after construction
// and safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *log.Logger
}

var _ core.Catalog = (*Client)(nil)

// New creates a Client.
func New(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = core.DefaultAPIBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		baseURL:   strings.TrimSuffix(base, "/"),
		http:      hc,
		userAgent: opts.UserAgent,
		logger:    logger.WithPrefix("modrinth"),
	}
}

// FetchCollection returns the project ids of a collection. A missing
// collection and a failed request both yield core.ErrCollectionNotFound.
func (c *Client) FetchCollection(ctx context.Context, collectionID string) ([]core.CatalogEntry, error) {
	res := getJSON[collectionResponse](ctx, c, "/v3/collection/"+url.PathEscape(collectionID))
	switch res.status {
	case statusEmpty:
		return nil, fmt.Errorf("collection id=%s: %w", collectionID, core.ErrCollectionNotFound)
	case statusFailed:
		return nil, fmt.Errorf("collection id=%s: %w: %w", collectionID, core.ErrCollectionNotFound, res.err)
	}

	entries := make([]core.CatalogEntry, 0, len(res.value.Projects))
	for _, p := range res.value.Projects {
		entries = append(entries, core.CatalogEntry(p))
	}
	return entries, nil
}

// FetchPackageMetadata returns a project's title, or core.UnknownName when
// it cannot be fetched.
func (c *Client) FetchPackageMetadata(ctx context.Context, packageID string) core.PackageMetadata {
	meta := core.PackageMetadata{ID: packageID, Title: core.UnknownName}
	res := getJSON[projectResponse](ctx, c, "/v2/project/"+url.PathEscape(packageID))
	if res.status == statusOK && res.value.Title != "" {
		meta.Title = res.value.Title
	}
	return meta
}

// FetchBuildList returns a project's versions in API order (newest first),
// or nil when they cannot be fetched.
func (c *Client) FetchBuildList(ctx context.Context, packageID string) []core.BuildArtifact {
	res := getJSON[[]versionResponse](ctx, c, "/v2/project/"+url.PathEscape(packageID)+"/version")
	if res.status != statusOK {
		return nil
	}

	builds := make([]core.BuildArtifact, 0, len(res.value))
	for _, v := range res.value {
		builds = append(builds, v.toBuild(packageID))
	}
	return builds
}

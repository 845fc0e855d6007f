package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Catalog is the remote package source the Reconciler reads from.
type Catalog interface {
	// FetchCollection lists a collection's packages. It returns an error
	// wrapping ErrCollectionNotFound when the id does not resolve.
	FetchCollection(ctx context.Context, collectionID string) ([]CatalogEntry, error)
	// FetchPackageMetadata never fails; unavailable titles become UnknownName.
	FetchPackageMetadata(ctx context.Context, packageID string) PackageMetadata
	// FetchBuildList returns builds newest first, or nil when unavailable.
	FetchBuildList(ctx context.Context, packageID string) []BuildArtifact
}

// Skip reasons reported on Outcome.Reason.
const (
	ReasonExists         = "already exists"
	ReasonLatest         = "latest version already exists"
	ReasonNoBuild        = "no matching build"
	ReasonNoFile         = "no downloadable file"
	ReasonTransferFailed = "transfer failed"
	ReasonRemoveFailed   = "previous version not removed"
)

// ReconcilerOptions configures a Reconciler.
type ReconcilerOptions struct {
	Workers int         // Concurrent packages; defaults to DefaultWorkers
	Logger  *log.Logger // nil discards log output
	// OnStart is called once with the number of packages in the collection.
	OnStart func(total int)
	// OnOutcome is called once per package as it finishes. It is called
	// from worker goroutines and must be safe for concurrent use.
	OnOutcome func(Outcome)
}

// Reconciler brings a package directory in line with a remote collection.
type Reconciler struct {
	catalog   Catalog
	fetcher   Fetcher
	scanner   *Scanner
	logger    *log.Logger
	workers   int
	onStart   func(total int)
	onOutcome func(Outcome)
}

// NewReconciler creates a Reconciler reading from catalog and downloading with fetcher.
func NewReconciler(catalog Catalog, fetcher Fetcher, opts ReconcilerOptions) *Reconciler {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reconciler{
		catalog:   catalog,
		fetcher:   fetcher,
		scanner:   NewScanner(),
		logger:    logger,
		workers:   workers,
		onStart:   opts.OnStart,
		onOutcome: opts.OnOutcome,
	}
}

// RunSummary aggregates the outcome of one reconciliation run.
type RunSummary struct {
	Installed int       `json:"installed" yaml:"installed"`
	Total     int       `json:"total" yaml:"total"`
	Outcomes  []Outcome `json:"outcomes" yaml:"outcomes"` // collection order
}

// Skipped returns the outcomes that did not change the directory.
func (s *RunSummary) Skipped() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Decision.Action == ActionSkip {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns the outcomes that carry an error.
func (s *RunSummary) Failed() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Err combines every per-package error, or returns nil.
func (s *RunSummary) Err() error {
	var err error
	for _, o := range s.Outcomes {
		if o.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s (%s): %w", o.ID, o.Name, o.Err))
		}
	}
	return err
}

// Reconcile installs or replaces every package of the target collection that
// is missing or outdated in the target directory. Per-package failures are
// recorded on the summary; only an unresolvable collection or an unusable
// directory aborts the run.
func (r *Reconciler) Reconcile(ctx context.Context, t Target) (*RunSummary, error) {
	return r.run(ctx, t, true)
}

// Plan computes the decision for every package without fetching or
// deleting anything. A missing directory is treated as empty.
func (r *Reconciler) Plan(ctx context.Context, t Target) (*RunSummary, error) {
	return r.run(ctx, t, false)
}

func (r *Reconciler) run(ctx context.Context, t Target, apply bool) (*RunSummary, error) {
	if t.CollectionID == "" {
		return nil, fmt.Errorf("collection id is required")
	}
	if t.Directory == "" {
		return nil, fmt.Errorf("target directory is required")
	}

	entries, err := r.catalog.FetchCollection(ctx, t.CollectionID)
	if err != nil {
		r.logger.Error("collection not found", "collection", t.CollectionID)
		return nil, err
	}
	r.logger.Info("mods in collection", "collection", t.CollectionID, "count", len(entries))

	inv, err := r.inventory(t.Directory, apply)
	if err != nil {
		return nil, err
	}

	if r.onStart != nil {
		r.onStart(len(entries))
	}

	summary := &RunSummary{
		Total:    len(entries),
		Outcomes: make([]Outcome, len(entries)),
	}

	var installed atomic.Int64
	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, entry := range entries {
		g.Go(func() error {
			o := r.reconcileOne(ctx, t, inv, string(entry), apply)
			summary.Outcomes[i] = o
			if o.Installed {
				installed.Add(1)
			}
			if r.onOutcome != nil {
				r.onOutcome(o)
			}
			return nil
		})
	}
	_ = g.Wait() // units never return errors
	summary.Installed = int(installed.Load())

	if apply {
		r.logger.Info("mods downloaded", "installed", summary.Installed, "total", summary.Total)
	}
	return summary, nil
}

// inventory scans dir, creating it first when changes will be applied.
func (r *Reconciler) inventory(dir string, apply bool) (*Inventory, error) {
	if apply {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory: %w", err)
		}
	} else if !dirExists(dir) {
		return NewInventory(nil), nil
	}

	items, err := r.scanner.Scan(dir)
	if err != nil {
		return nil, err
	}
	return NewInventory(items), nil
}

// reconcileOne decides and, when apply is set, carries out the decision for
// one package. It never panics out and never returns an error; failures are
// folded into the Outcome.
func (r *Reconciler) reconcileOne(ctx context.Context, t Target, inv *Inventory, id string, apply bool) (o Outcome) {
	o = Outcome{ID: id, Name: UnknownName, Decision: Decision{Action: ActionSkip}}
	defer func() {
		if p := recover(); p != nil {
			o.Decision = Decision{Action: ActionSkip}
			o.Installed = false
			o.Reason = ReasonTransferFailed
			o.setErr(fmt.Errorf("panic: %v", p))
			r.logger.Error("failed to download", "mod", id, "name", o.Name, "err", o.Err)
		}
	}()

	meta := r.catalog.FetchPackageMetadata(ctx, id)
	if meta.Title != "" {
		o.Name = meta.Title
	}
	logger := r.logger.With("mod", id, "name", o.Name)

	existing, found := inv.Lookup(id, o.Name)
	if !t.UpdateExisting && found {
		o.Reason = ReasonExists
		o.Filename = existing.Filename
		logger.Info("already exists, skipping")
		return o
	}

	build, ok := SelectBuild(r.catalog.FetchBuildList(ctx, id), t.RuntimeVersion, t.Loader)
	if !ok {
		o.Reason = ReasonNoBuild
		o.setErr(ErrNoMatchingBuild)
		logger.Error("no version found", "version", t.RuntimeVersion, "loader", t.Loader)
		return o
	}
	o.Build = build.VersionNumber

	file, ok := PrimaryFile(build)
	if !ok {
		o.Reason = ReasonNoFile
		o.setErr(ErrNoPrimaryFile)
		logger.Error("couldn't find a file to download")
		return o
	}
	o.URL = file.URL
	o.Filename = EncodeFilename(fileStem(id, o.Name), t.RuntimeVersion, t.Loader)

	if found && existing.Filename == o.Filename {
		o.Reason = ReasonLatest
		logger.Info("latest version already exists", "file", o.Filename)
		return o
	}

	if found {
		o.Decision = Decision{Action: ActionReplace, OldFilename: existing.Filename}
	} else {
		o.Decision = Decision{Action: ActionInstall}
	}
	if !apply {
		return o
	}

	if found {
		logger.Info("updating", "file", file.Filename)
	} else {
		logger.Info("downloading", "file", file.Filename)
	}

	dest := filepath.Join(t.Directory, o.Filename)
	if err := r.fetcher.Fetch(ctx, file.URL, dest); err != nil {
		o.Decision = Decision{Action: ActionSkip}
		o.Reason = ReasonTransferFailed
		o.setErr(&TransferError{Op: "fetch", Path: dest, Err: err})
		logger.Error("failed to download", "err", err)
		return o
	}

	if found {
		logger.Info("removing previous version", "file", existing.Filename)
		old := filepath.Join(t.Directory, existing.Filename)
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			o.Reason = ReasonRemoveFailed
			o.setErr(&TransferError{Op: "remove", Path: old, Err: err})
			logger.Error("failed to remove previous version", "err", err)
			return o
		}
	}

	o.Installed = true
	return o
}

// fileStem is the name a package's file is written under. Packages whose
// metadata could not be fetched use their identifier so they never share a file.
func fileStem(packageID, displayName string) string {
	if displayName == UnknownName {
		return packageID
	}
	return displayName
}

func (o *Outcome) setErr(err error) {
	o.Err = err
	o.ErrorString = err.Error()
}

package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// LoaderIris is the one loader whose packages are shader zips rather than jars.
	LoaderIris = "iris"

	extJar = ".jar"
	extZip = ".zip"

	// UnknownName is the display name used when package metadata is unavailable.
	UnknownName = "Unknown Mod"

	// tempPrefix marks in-flight downloads inside the target directory.
	tempPrefix = ".modrow-"
)

var pathUnsafe = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// PackageExt returns the file extension used for packages of the given loader.
// This is a fixed rule, not derived from the remote file name.
func PackageExt(loader string) string {
	if loader == LoaderIris {
		return extZip
	}
	return extJar
}

// EncodeFilename builds the on-disk file name "{name}-{runtimeVersion}{ext}".
func EncodeFilename(displayName, runtimeVersion, loader string) string {
	return safeName(displayName) + "-" + runtimeVersion + PackageExt(loader)
}

// DecodeIdentifier recovers the package key from a file name written by
// EncodeFilename: the extension and one trailing "-{version}" qualifier are
// removed. Names without a qualifier decode to the name minus its extension.
func DecodeIdentifier(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if i := strings.LastIndex(base, "-"); i > 0 {
		return base[:i]
	}
	return base
}

// safeName makes a display name usable as a single path element.
func safeName(name string) string {
	name = strings.TrimSpace(pathUnsafe.Replace(name))
	if name == "" || name == "." || name == ".." {
		return UnknownName
	}
	return name
}

// Scanner reads a package directory into an inventory.
type Scanner struct{}

// NewScanner creates a Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan lists the package files in dir. Subdirectories and in-flight
// downloads are ignored. The directory must already exist.
func (s *Scanner) Scan(dir string) ([]InventoryItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading package directory: %w", err)
	}

	var items []InventoryItem
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		items = append(items, InventoryItem{
			ID:       DecodeIdentifier(entry.Name()),
			Filename: entry.Name(),
		})
	}
	return items, nil
}

// Inventory indexes InventoryItems by identifier.
// When several files decode to the same identifier the last one wins;
// duplicates are not cleaned up.
type Inventory struct {
	byID map[string]InventoryItem
}

// NewInventory builds an index over items.
func NewInventory(items []InventoryItem) *Inventory {
	inv := &Inventory{byID: make(map[string]InventoryItem, len(items))}
	for _, item := range items {
		inv.byID[item.ID] = item
	}
	return inv
}

// Len returns the number of distinct identifiers.
func (inv *Inventory) Len() int {
	return len(inv.byID)
}

// Lookup finds the installed file for a package, first by package
// identifier and then by the display name its files are written under.
// The UnknownName placeholder never matches by name.
func (inv *Inventory) Lookup(packageID, displayName string) (InventoryItem, bool) {
	if item, ok := inv.byID[packageID]; ok {
		return item, true
	}
	if displayName == UnknownName {
		return InventoryItem{}, false
	}
	item, ok := inv.byID[safeName(displayName)]
	return item, ok
}

package core

import "slices"

// SelectBuild returns the first build, in input order, that supports both
// runtimeVersion and loader by exact, case-sensitive match. The remote API
// lists builds newest first and that order is trusted as-is; builds are
// never re-sorted here.
func SelectBuild(builds []BuildArtifact, runtimeVersion, loader string) (BuildArtifact, bool) {
	for _, b := range builds {
		if slices.Contains(b.GameVersions, runtimeVersion) && slices.Contains(b.Loaders, loader) {
			return b, true
		}
	}
	return BuildArtifact{}, false
}

// PrimaryFile returns the file marked primary in b.
func PrimaryFile(b BuildArtifact) (File, bool) {
	for _, f := range b.Files {
		if f.Primary {
			return f, true
		}
	}
	return File{}, false
}

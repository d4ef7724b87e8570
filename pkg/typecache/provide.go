/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package typecache

import (
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"
)

// New returns an empty type cache.
//
// Load source folders and files into it, then call Finalize to resolve and
// register the collected type declarations.
func New() ITypeCache {
	return newTypeCache()
}

// ResolveSourceFolders expands a search path list into source folders.
//
// The list separates entries with ';' or ':'. Relative entries are resolved
// against baseDir. Entries that do not exist on disk are dropped, duplicates
// are kept once, and the original order is preserved.
func ResolveSourceFolders(baseDir string, pathList string) []string {
	folders := make([]string, 0)
	for _, entry := range splitList(pathList, ";:") {
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(baseDir, entry)
		}
		canon, err := canonicalPath(entry)
		if err != nil {
			continue
		}
		if _, err := os.Stat(canon); err != nil {
			continue
		}
		if !slices.Contains(folders, canon) {
			folders = append(folders, canon)
		}
	}
	return folders
}

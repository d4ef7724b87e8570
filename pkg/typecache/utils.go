/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */

package typecache

import (
	"path/filepath"
	"strings"
	"unicode"
)

// canonicalPath makes p absolute, cleans it and normalizes separators to
// forward slashes, so that path equality and prefix checks are exact.
func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Clean(abs)), nil
}

// isPathPrefixOf reports whether prefix names folder path or one of its
// ancestors. Both arguments must be canonical. The check is exact at
// segment boundaries: "/tmp/foo" is not a prefix of "/tmp/foolish".
func isPathPrefixOf(prefix, path string) bool {
	switch {
	case len(path) == len(prefix):
		return path == prefix
	case len(path) < len(prefix):
		return false
	case path[:len(prefix)] != prefix:
		return false
	default:
		return path[len(prefix)] == '/'
	}
}

func isPackageFileName(identity string) bool {
	return identity == PackageFileName || strings.HasSuffix(identity, "/"+PackageFileName)
}

// splitList splits s at any of the runes in seps, trimming whitespace and
// dropping empty items.
func splitList(s string, seps string) []string {
	items := strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(seps, r) })
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func packagePrefix(pkg string) string {
	if pkg == "" {
		return ""
	}
	return pkg + "."
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 * @author: Maxim Geraskin
 */

package typecache

import (
	"strings"
)

// Qualified names are dot-separated segment sequences; the default package
// is the empty string. The helpers below keep segment boundaries exact so
// callers never concatenate name parts by hand.

// JoinQName joins two name parts with a dot, skipping empty parts.
func JoinQName(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "." + b
}

// PackageOf returns the qualified name minus its last segment, or "" for
// single-segment names.
func PackageOf(qname string) string {
	if i := strings.LastIndexByte(qname, '.'); i >= 0 {
		return qname[:i]
	}
	return ""
}

// SimpleNameOf returns the last segment of a qualified name.
func SimpleNameOf(qname string) string {
	if i := strings.LastIndexByte(qname, '.'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}

// IsQualified reports whether name carries a package part.
func IsQualified(name string) bool {
	return strings.ContainsRune(name, '.')
}

// SegmentsOf splits a qualified name into its segments. The empty name has
// no segments.
func SegmentsOf(qname string) []string {
	if qname == "" {
		return nil
	}
	return strings.Split(qname, ".")
}

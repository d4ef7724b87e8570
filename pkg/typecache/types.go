/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */

package typecache

import (
	"github.com/dsimkit/ndl/pkg/parser"
)

type typeCache struct {
	// canonical identity -> source unit; the cache owns the trees
	files map[string]*parser.File

	// canonical source folder -> root package name
	folderPackages map[string]string

	// package name -> identity of its package file; filled by Finalize
	packageFiles map[string]string

	registry  map[string]*typeInfo
	typeNames []string // sorted; rebuilt lazily, nil after registration
	pending   []pendingType
	patterns  *patternCache
	finalized bool
}

func newTypeCache() *typeCache {
	return &typeCache{
		files:          make(map[string]*parser.File),
		folderPackages: make(map[string]string),
		packageFiles:   make(map[string]string),
		registry:       make(map[string]*typeInfo),
		patterns:       newPatternCache(patternCacheSize),
	}
}

// pendingType is a collected declaration waiting for its dependencies.
// Created by collection, removed by registration or reported by Finalize.
type pendingType struct {
	qname   string
	isInner bool
	decl    *parser.TypeDecl
}

type typeInfo struct {
	qname   string
	isInner bool
	decl    *parser.TypeDecl
}

func (t *typeInfo) QName() string         { return t.qname }
func (t *typeInfo) SimpleName() string    { return SimpleNameOf(t.qname) }
func (t *typeInfo) IsInner() bool         { return t.isInner }
func (t *typeInfo) Kind() parser.DeclKind { return t.decl.Kind }
func (t *typeInfo) Decl() *parser.TypeDecl {
	return t.decl
}
func (t *typeInfo) File() *parser.File { return t.decl.File() }

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 * @author: Maxim Geraskin
 */

package typecache

import (
	"github.com/dsimkit/ndl/pkg/parser"
)

// ITypeCache accumulates NDL source units in any order and resolves their
// type declarations into a registry of fully qualified names.
//
// The cache is open after construction: sources may be loaded but no type
// is registered yet. Finalize closes it, registers every declaration whose
// dependencies resolve and reports the rest. After Finalize further loads
// are still possible (except for package files) and resolve eagerly.
//
// All mutating calls must be serialized by the caller. Once no more
// mutating calls are made, read access is safe from multiple goroutines.
type ITypeCache interface {
	ITypeNames

	// LoadSourceFolder loads every *.ndl file under folder, recursively,
	// mapping subfolders to subpackages of the folder's root package. The
	// root package is declared by the folder's package.ndl file, if any.
	//
	// excludedPackages is a ';'-separated list of package names whose
	// folders are skipped, subfolders included. The default package ""
	// cannot be excluded.
	//
	// Returns the number of source files encountered.
	LoadSourceFolder(folder string, excludedPackages string) (int, error)

	// LoadFile loads a single source file. Loading the same file twice is
	// a no-op. See ExpectPackage and FromMarkup for options.
	LoadFile(path string, opts ...LoadOption) error

	// LoadText loads a source unit given as a string. name serves as the
	// unit's identity and must be unique among loads; loading the same
	// name twice is a no-op.
	LoadText(name string, text string, opts ...LoadOption) error

	// RegisterBuiltinDeclarations loads the built-in declarations under
	// BuiltinDeclarationsIdentity.
	RegisterBuiltinDeclarations() error

	// Finalize closes the cache and registers the loaded declarations,
	// deferring each until its base types and interfaces are registered.
	// Declarations that never resolve are reported in one error.
	// May only be called once.
	Finalize() error

	// Finalized reports whether Finalize has been called.
	Finalized() bool

	// Lookup returns the registered type with the given fully qualified
	// name, or nil.
	Lookup(qname string) ITypeInfo

	// Get is Lookup returning an error when the name is not registered.
	Get(qname string) (ITypeInfo, error)

	// TypeNames returns the registered fully qualified names, sorted.
	TypeNames() []string

	// Files returns the identities of the loaded source units, sorted.
	Files() []string

	// File returns a loaded source unit by identity, or nil.
	File(identity string) *parser.File

	// SourceFolderForFolder returns the loaded source folder that folder
	// belongs to, or "".
	SourceFolderForFolder(folder string) string

	// PackageForFolder returns the package name a file in folder is
	// expected to declare, or "" when folder is under no loaded source
	// folder.
	PackageForFolder(folder string) string

	// PackageFilesForLookup returns the package files of pkg and of its
	// ancestor packages up to and including the default package, the most
	// specific first. Available after Finalize.
	PackageFilesForLookup(pkg string) []*parser.File

	// Resolve resolves a simple or fully qualified type name against the
	// given candidate set. Simple names are tried, in order, as an inner
	// type of the context declaration, as an exact import, in the file's
	// own package, and against wildcard imports. Returns "" when nothing
	// matches.
	Resolve(ctx LookupContext, name string, qnames ITypeNames) string

	// ResolveRegistered is Resolve against the registry itself.
	ResolveRegistered(ctx LookupContext, name string) string
}

// ITypeNames is a set of fully qualified type names, the candidate set of
// Resolve. ITypeCache itself is the registry-backed implementation.
type ITypeNames interface {
	Contains(qname string) bool

	// Names returns the set's members, sorted.
	Names() []string
}

// ITypeInfo describes one registered type declaration.
type ITypeInfo interface {
	QName() string
	SimpleName() string

	// IsInner reports whether the declaration is nested in another one.
	IsInner() bool

	Kind() parser.DeclKind
	Decl() *parser.TypeDecl
	File() *parser.File
}

// LookupContext is the place a name is resolved from: the enclosing
// declaration (nil at file level), the source unit, and the context's own
// qualified name. Use ParentContextOf or ContextOf to build one.
type LookupContext struct {
	Decl  *parser.TypeDecl
	File  *parser.File
	QName string
}

type LoadOption func(*loadOptions)

// ExpectPackage makes the load fail unless the unit declares the given
// package.
func ExpectPackage(pkg string) LoadOption {
	return func(o *loadOptions) { o.expectPackage = &pkg }
}

// FromMarkup loads the file as the markup (XML) serialization of a source
// unit. Not supported with LoadText.
func FromMarkup() LoadOption {
	return func(o *loadOptions) { o.markup = true }
}

type loadOptions struct {
	expectPackage *string
	markup        bool
}

func applyOptions(opts []LoadOption) loadOptions {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

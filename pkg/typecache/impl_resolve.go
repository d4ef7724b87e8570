/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package typecache

import (
	"fmt"
	"strings"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/dsimkit/ndl/pkg/parser"
)

func (c *typeCache) Finalize() error {
	if c.finalized {
		return ErrFinalizeCalledTwice
	}
	// the transition happens first, so a failed Finalize still pins the
	// lifecycle: package files stay rejected and Finalize stays unrepeatable
	c.finalized = true

	identities := maps.Keys(c.files)
	slices.Sort(identities)

	// collect package files
	for _, identity := range identities {
		if !isPackageFileName(identity) {
			continue
		}
		pkg := c.files[identity].PackageName()
		if other, ok := c.packageFiles[pkg]; ok {
			return ErrDuplicatePackageFile(pkg, identity, other)
		}
		c.packageFiles[pkg] = identity
	}

	// collect types from the loaded units
	for _, identity := range identities {
		file := c.files[identity]
		c.collectTypesFrom(file.Decls(), packagePrefix(file.PackageName()), false)
	}

	return c.registerPendingTypes()
}

func (c *typeCache) collectTypesFrom(decls []*parser.TypeDecl, prefix string, areInner bool) {
	for _, d := range decls {
		qname := prefix + d.Name
		c.pending = append(c.pending, pendingType{qname: qname, isInner: areInner, decl: d})
		if ts := d.TypesSection(); ts != nil {
			c.collectTypesFrom(ts.Decls, qname+".", true)
		}
	}
}

// registerPendingTypes registers every pending declaration whose
// dependencies are already registered, repeating until a full scan makes no
// progress, then reports the leftovers.
func (c *typeCache) registerPendingTypes() error {
	again := true
	for again {
		again = false
		for i := 0; i < len(c.pending); i++ {
			p := c.pending[i]
			if !c.dependenciesResolved(p.qname, p.decl) {
				continue
			}
			if c.Lookup(p.qname) != nil {
				return errorAt(ErrRedeclaration(p.decl.Kind.String(), p.qname), &p.decl.Pos)
			}
			c.registerType(p.qname, p.isInner, p.decl)
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			i--
			again = true
		}
	}

	// settle the name cache, so that reads after this point stay read-only
	c.TypeNames()

	if len(c.pending) > 0 {
		if len(c.pending) == 1 {
			return errorAt(ErrUnresolvedType(c.pending[0].qname), &c.pending[0].decl.Pos)
		}
		names := make([]string, len(c.pending))
		for i := range c.pending {
			names[i] = c.pending[i].qname
		}
		return ErrUnresolvedTypes(names)
	}
	return nil
}

func (c *typeCache) registerType(qname string, isInner bool, decl *parser.TypeDecl) {
	c.registry[qname] = &typeInfo{qname: qname, isInner: isInner, decl: decl}
	c.typeNames = nil // invalidate
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("registered %s %s", decl.Kind, qname))
	}
}

func (c *typeCache) dependenciesResolved(qname string, decl *parser.TypeDecl) bool {
	ctx := ParentContextOf(qname, decl)
	for _, ref := range decl.DependencyRefs() {
		// the candidate itself is not yet registered, so a self-reference
		// does not resolve
		if c.Resolve(ctx, ref.Name, c) == "" {
			return false
		}
	}
	return true
}

// ParentContextOf returns the context a declaration's own dependency
// references are resolved in: its enclosing declaration, or the file for
// top-level declarations.
func ParentContextOf(qname string, decl *parser.TypeDecl) LookupContext {
	return LookupContext{
		Decl:  decl.Enclosing(),
		File:  decl.File(),
		QName: PackageOf(qname),
	}
}

// ContextOf returns the context for resolving names that appear inside the
// body of a registered type, e.g. its submodule types.
func ContextOf(info ITypeInfo) LookupContext {
	return LookupContext{Decl: info.Decl(), File: info.File(), QName: info.QName()}
}

func (c *typeCache) Resolve(ctx LookupContext, name string, qnames ITypeNames) string {
	// partially qualified names are not supported: a name is either simple
	// or fully qualified
	if IsQualified(name) {
		if qnames.Contains(name) {
			return name
		}
		return ""
	}

	// inner type?
	if ctx.Decl != nil && ctx.Decl.Kind.IsComposite() {
		qname := ctx.QName
		if ctx.Decl.Enclosing() != nil {
			// the context is itself an inner type: look the name up in its
			// enclosing toplevel declaration
			qname = PackageOf(qname)
		}
		qname = JoinQName(qname, name)
		if qnames.Contains(qname) {
			return qname
		}
	}

	imports := ctx.File.ImportSpecs()
	dotName := "." + name

	// exactly imported type?
	for _, imp := range imports {
		if qnames.Contains(imp) && (strings.HasSuffix(imp, dotName) || imp == name) {
			return imp
		}
	}

	// from the same package?
	qname := JoinQName(ctx.File.PackageName(), name)
	if qnames.Contains(qname) {
		return qname
	}

	// try harder, using wildcard imports
	for _, imp := range imports {
		if !containsWildcards(imp) {
			continue
		}
		for _, candidate := range qnames.Names() {
			if strings.HasSuffix(candidate, dotName) || candidate == name {
				if c.patterns.matches(imp, candidate) {
					return candidate
				}
			}
		}
	}

	return ""
}

func (c *typeCache) ResolveRegistered(ctx LookupContext, name string) string {
	return c.Resolve(ctx, name, c)
}

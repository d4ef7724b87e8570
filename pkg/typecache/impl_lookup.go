/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package typecache

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/dsimkit/ndl/pkg/parser"
)

func (c *typeCache) Lookup(qname string) ITypeInfo {
	if info, ok := c.registry[qname]; ok {
		return info
	}
	return nil
}

func (c *typeCache) Get(qname string) (ITypeInfo, error) {
	info := c.Lookup(qname)
	if info == nil {
		return nil, ErrTypeNotFound(qname)
	}
	return info, nil
}

func (c *typeCache) TypeNames() []string {
	if c.typeNames == nil && len(c.registry) > 0 {
		c.typeNames = maps.Keys(c.registry)
		slices.Sort(c.typeNames)
	}
	return c.typeNames
}

func (c *typeCache) Contains(qname string) bool {
	_, ok := c.registry[qname]
	return ok
}

func (c *typeCache) Names() []string {
	return c.TypeNames()
}

func (c *typeCache) Finalized() bool {
	return c.finalized
}

func (c *typeCache) Files() []string {
	identities := maps.Keys(c.files)
	slices.Sort(identities)
	return identities
}

func (c *typeCache) File(identity string) *parser.File {
	return c.files[identity]
}

// SourceFolderForFolder relies on source folders not nesting, so at most
// one registered folder can be a prefix of folder.
func (c *typeCache) SourceFolderForFolder(folder string) string {
	canon, err := canonicalPath(folder)
	if err != nil {
		return ""
	}
	roots := maps.Keys(c.folderPackages)
	slices.Sort(roots)
	for _, root := range roots {
		if isPathPrefixOf(root, canon) {
			return root
		}
	}
	return ""
}

func (c *typeCache) PackageForFolder(folder string) string {
	root := c.SourceFolderForFolder(folder)
	if root == "" {
		return ""
	}
	canon, err := canonicalPath(folder)
	if err != nil {
		return ""
	}
	subPackage := strings.ReplaceAll(strings.TrimPrefix(canon[len(root):], "/"), "/", ".")
	return JoinQName(c.folderPackages[root], subPackage)
}

func (c *typeCache) PackageFilesForLookup(pkg string) []*parser.File {
	result := make([]*parser.File, 0)
	for {
		if identity, ok := c.packageFiles[pkg]; ok {
			result = append(result, c.files[identity])
		}
		if pkg == "" {
			break
		}
		pkg = PackageOf(pkg)
	}
	return result
}

/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package typecache

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/slices"

	"github.com/dsimkit/ndl/pkg/parser"
)

//go:embed builtin.ndl
var builtinDeclarations string

func (c *typeCache) LoadSourceFolder(folder string, excludedPackages string) (int, error) {
	canon, err := canonicalPath(folder)
	if err != nil {
		return 0, ErrFolderLoad(folder, err)
	}
	rootPackage, err := c.rootPackageName(canon)
	if err != nil {
		return 0, ErrFolderLoad(folder, err)
	}
	c.folderPackages[canon] = rootPackage
	count, err := c.loadFolder(canon, rootPackage, splitList(excludedPackages, ";"))
	if err != nil {
		return count, ErrFolderLoad(folder, err)
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("loaded %d NDL files from %s (package '%s')", count, canon, rootPackage))
	}
	return count, nil
}

// rootPackageName peeks at the folder's package file without registering it.
// A missing package file means the default package.
func (c *typeCache) rootPackageName(canonFolder string) (string, error) {
	path := canonFolder + "/" + PackageFileName
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	file, err := parseAndValidate(path, nil, false)
	if err != nil {
		return "", err
	}
	return file.PackageName(), nil
}

func (c *typeCache) loadFolder(folder string, expectedPackage string, excludedPackages []string) (int, error) {
	// the default package "" cannot be excluded
	if expectedPackage != "" && slices.Contains(excludedPackages, expectedPackage) {
		return 0, nil
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			n, err := c.loadFolder(folder+"/"+name, JoinQName(expectedPackage, name), excludedPackages)
			count += n
			if err != nil {
				return count, err
			}
		} else if strings.HasSuffix(name, SourceFileExt) {
			count++
			expected := expectedPackage
			if err := c.load(folder+"/"+name, nil, &expected, false); err != nil {
				return count, err
			}
		}
	}
	return count, nil
}

func (c *typeCache) LoadFile(path string, opts ...LoadOption) error {
	o := applyOptions(opts)
	identity, err := canonicalPath(path)
	if err != nil {
		return ErrLoadFailed(path, err)
	}
	return c.load(identity, nil, o.expectPackage, o.markup)
}

func (c *typeCache) LoadText(name string, text string, opts ...LoadOption) error {
	o := applyOptions(opts)
	return c.load(name, &text, o.expectPackage, o.markup)
}

func (c *typeCache) RegisterBuiltinDeclarations() error {
	return c.load(BuiltinDeclarationsIdentity, &builtinDeclarations, nil, false)
}

// load parses, validates and stores one source unit. Loading an identity
// that is already present is a no-op. After Finalize the unit's types are
// collected and resolved immediately.
func (c *typeCache) load(identity string, text *string, expectedPackage *string, markup bool) error {
	if _, ok := c.files[identity]; ok {
		return nil // already loaded
	}
	if c.finalized && isPackageFileName(identity) {
		return ErrPackageFileAfterFinalize(identity)
	}

	file, err := parseAndValidate(identity, text, markup)
	if err != nil {
		return err
	}

	declared := file.PackageName()
	if expectedPackage != nil && declared != *expectedPackage {
		return ErrPackageMismatch(declared, *expectedPackage, identity)
	}

	c.files[identity] = file
	if logger.IsVerbose() {
		logger.Verbose("loaded " + identity)
	}

	// once the cache is finalized, resolution can no longer be deferred
	if c.finalized {
		c.collectTypesFrom(file.Decls(), packagePrefix(declared), false)
		return c.registerPendingTypes()
	}
	return nil
}

func parseAndValidate(identity string, text *string, markup bool) (*parser.File, error) {
	var file *parser.File
	var issues parser.Issues
	var err error
	switch {
	case markup && text != nil:
		return nil, ErrMarkupFromText
	case markup:
		file, issues, err = parser.ParseMarkupFile(identity)
	case text != nil:
		file, issues = parser.ParseText(identity, *text)
	default:
		file, issues, err = parser.ParseFile(identity)
	}
	if err != nil {
		return nil, ErrLoadFailed(identity, err)
	}
	if issue := issues.FirstError(); issue != nil {
		return nil, errFromIssue(issue, "")
	}
	logWarnings(issues)

	structural := parser.ValidateStructure(file)
	if issue := structural.FirstError(); issue != nil {
		return nil, errFromIssue(issue, structureFailurePrefix)
	}
	logWarnings(structural)

	syntax := parser.ValidateSyntax(file)
	if issue := syntax.FirstError(); issue != nil {
		return nil, errFromIssue(issue, "")
	}
	logWarnings(syntax)

	return file, nil
}

func logWarnings(issues parser.Issues) {
	if !logger.IsVerbose() {
		return
	}
	for _, w := range issues.Warnings() {
		logger.Verbose(w.String())
	}
}

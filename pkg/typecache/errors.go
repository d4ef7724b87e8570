/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package typecache

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/dsimkit/ndl/pkg/parser"
)

var ErrFinalizeCalledTwice = errors.New("Finalize may only be called once")
var ErrMarkupFromText = errors.New("parsing markup from text is not supported")

func ErrFolderLoad(folder string, err error) error {
	return fmt.Errorf("could not load NDL sources from '%s': %w", folder, err)
}

func ErrLoadFailed(identity string, err error) error {
	return fmt.Errorf("cannot load '%s': %w", identity, err)
}

func ErrPackageFileAfterFinalize(identity string) error {
	return fmt.Errorf("cannot load '%s': '%s' files can no longer be loaded at this point", identity, PackageFileName)
}

func ErrPackageMismatch(declared, expected, file string) error {
	return fmt.Errorf("declared package '%s' does not match expected package '%s' in file %s", declared, expected, file)
}

func ErrDuplicatePackageFile(pkg, file, otherFile string) error {
	annotation := ""
	if pkg == "" {
		annotation = " (the default package)"
	}
	return fmt.Errorf("more than one %s file for package '%s'%s: '%s' and '%s'", PackageFileName, pkg, annotation, file, otherFile)
}

func ErrRedeclaration(kind, qname string) error {
	return fmt.Errorf("redeclaration of %s %s", kind, qname)
}

func ErrUnresolvedType(qname string) error {
	return fmt.Errorf("NDL type '%s' could not be fully resolved due to a missing base type or interface", qname)
}

func ErrUnresolvedTypes(qnames []string) error {
	return fmt.Errorf("the following NDL types could not be fully resolved due to a missing base type or interface: %s", strings.Join(qnames, ", "))
}

func ErrTypeNotFound(qname string) error {
	return fmt.Errorf("NDL declaration '%s' not found", qname)
}

func errorAt(err error, pos *lexer.Position) error {
	return fmt.Errorf("%w, at %s", err, pos)
}

// errFromIssue turns the first error of a parse or validation pass into the
// load error. The first rune is capitalized, the unexpected-token detail of
// parse errors is replaced with a plain "Syntax error" and the position is
// appended when known.
func errFromIssue(issue *parser.Issue, prefix string) error {
	msg := upperFirst(issue.Message)
	if strings.HasPrefix(msg, "Unexpected token") {
		msg = "Syntax error"
	}
	if issue.Pos.Filename == "" && issue.Pos.Line == 0 {
		return errors.New(prefix + msg)
	}
	return fmt.Errorf("%s%s, at %s", prefix, msg, issue.Pos)
}

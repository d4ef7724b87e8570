/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package parser

import (
	"errors"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var ndlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//.*`},
	{Name: "Arrow", Pattern: `-->|<-->|<--`},
	{Name: "Number", Pattern: `[-+]?\d+(\.\d+)?([eE][-+]?\d+)?`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `[;:,.{}()\[\]=@*]`},
	{Name: "Whitespace", Pattern: `[ \r\n\t]+`},
})

var ndlParser = participle.MustBuild[File](
	participle.Lexer(ndlLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

func parseImpl(fileName string, content string) (*File, Issues) {
	file, err := ndlParser.ParseString(fileName, content)
	if err != nil {
		return nil, issuesOfParseError(fileName, err)
	}
	link(file)
	return file, nil
}

func parseFileImpl(fileName string) (*File, Issues, error) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, nil, err
	}
	file, issues := parseImpl(fileName, string(content))
	return file, issues, nil
}

func issuesOfParseError(fileName string, err error) Issues {
	var perr participle.Error
	if errors.As(err, &perr) {
		return Issues{{Severity: SeverityError, Message: perr.Message(), Pos: perr.Position()}}
	}
	return Issues{{Severity: SeverityError, Message: err.Error(), Pos: lexer.Position{Filename: fileName}}}
}

// link installs file and enclosing-declaration back references. Parse entry
// points call it before returning the tree; markup loading relies on it too.
func link(file *File) {
	for _, d := range file.Decls() {
		linkDecl(d, file, nil)
	}
}

func linkDecl(d *TypeDecl, file *File, encl *TypeDecl) {
	d.file = file
	d.encl = encl
	for i := range d.Sections {
		if ts := d.Sections[i].Types; ts != nil {
			for _, inner := range ts.Decls {
				linkDecl(inner, file, d)
			}
		}
	}
}

/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */
package parser

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Markup files carry the serialized form of a source unit. The reader maps
// elements onto the same AST the grammar produces, so the structural and
// syntax validators apply to markup-loaded trees exactly as to parsed text.
// Attribute values that hold expressions are re-parsed with the NDL lexer;
// a value that does not parse is dropped with a warning.

const markupRootElement = "ndl-file"

var markupDeclKinds = map[string]DeclKind{
	"channel":           DeclKind_Channel,
	"channel-interface": DeclKind_ChannelInterface,
	"simple-module":     DeclKind_SimpleModule,
	"compound-module":   DeclKind_CompoundModule,
	"network":           DeclKind_Network,
	"module-interface":  DeclKind_ModuleInterface,
}

var exprParser = participle.MustBuild[Expr](
	participle.Lexer(ndlLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

var endpointParser = participle.MustBuild[Endpoint](
	participle.Lexer(ndlLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

type xmlFile struct {
	Package    *xmlNamed     `xml:"package"`
	Imports    []xmlImport   `xml:"import"`
	Properties []xmlProperty `xml:"property"`
	Decls      []xmlDecl     `xml:",any"`
}

type xmlNamed struct {
	Name string `xml:"name,attr"`
}

type xmlImport struct {
	Spec string `xml:"import-spec,attr"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlDecl struct {
	XMLName     xml.Name
	Name        string          `xml:"name,attr"`
	Extends     []xmlNamed      `xml:"extends"`
	Interfaces  []xmlNamed      `xml:"interface-name"`
	Parameters  *xmlParameters  `xml:"parameters"`
	Gates       *xmlGates       `xml:"gates"`
	Types       *xmlTypes       `xml:"types"`
	Submodules  *xmlSubmodules  `xml:"submodules"`
	Connections *xmlConnections `xml:"connections"`
}

type xmlParameters struct {
	Properties []xmlProperty `xml:"property"`
	Params     []xmlParam    `xml:"param"`
}

type xmlParam struct {
	Type     string `xml:"type,attr"`
	Name     string `xml:"name,attr"`
	Volatile bool   `xml:"is-volatile,attr"`
	Value    string `xml:"value,attr"`
}

type xmlGates struct {
	Gates []xmlGate `xml:"gate"`
}

type xmlGate struct {
	Name   string `xml:"name,attr"`
	Dir    string `xml:"type,attr"`
	Vector bool   `xml:"is-vector,attr"`
	Size   string `xml:"vector-size,attr"`
}

type xmlTypes struct {
	Decls []xmlDecl `xml:",any"`
}

type xmlSubmodules struct {
	Submodules []xmlSubmodule `xml:"submodule"`
}

type xmlSubmodule struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type xmlConnections struct {
	AllowUnconnected bool            `xml:"allow-unconnected,attr"`
	Connections      []xmlConnection `xml:"connection"`
}

type xmlConnection struct {
	Src     string `xml:"src,attr"`
	Dest    string `xml:"dest,attr"`
	Channel string `xml:"channel,attr"`
}

func parseMarkupFileImpl(fileName string) (*File, Issues, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return parseMarkup(fileName, f)
}

func parseMarkup(fileName string, r io.Reader) (*File, Issues, error) {
	pos := markupPos(fileName)
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, Issues{{Severity: SeverityError, Message: "<" + markupRootElement + "> expected as root element, in file " + fileName, Pos: pos}}, nil
		}
		if err != nil {
			return nil, Issues{{Severity: SeverityError, Message: err.Error(), Pos: pos}}, nil
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != markupRootElement {
			return nil, Issues{{Severity: SeverityError, Message: "<" + markupRootElement + "> expected as root element, in file " + fileName, Pos: pos}}, nil
		}
		var xf xmlFile
		if err := dec.DecodeElement(&xf, &start); err != nil {
			return nil, Issues{{Severity: SeverityError, Message: err.Error(), Pos: pos}}, nil
		}
		file, issues := markupToFile(pos, &xf)
		return file, issues, nil
	}
}

func markupPos(fileName string) lexer.Position {
	return lexer.Position{Filename: fileName, Line: 1, Column: 1}
}

func markupToFile(pos lexer.Position, xf *xmlFile) (*File, Issues) {
	issues := Issues{}
	file := &File{Pos: pos}
	if xf.Package != nil {
		file.Package = &PackageDecl{Pos: pos, Name: xf.Package.Name}
	}
	for i := range xf.Imports {
		file.Imports = append(file.Imports, &ImportDecl{Pos: pos, Spec: xf.Imports[i].Spec})
	}
	for i := range xf.Properties {
		file.Items = append(file.Items, FileItem{Property: markupProperty(&xf.Properties[i], pos)})
	}
	for i := range xf.Decls {
		if d := markupDecl(&issues, pos, &xf.Decls[i]); d != nil {
			file.Items = append(file.Items, FileItem{Decl: d})
		}
	}
	link(file)
	return file, issues
}

func markupProperty(p *xmlProperty, pos lexer.Position) *PropertyDecl {
	return &PropertyDecl{Pos: pos, Name: p.Name, Value: p.Value}
}

func markupDecl(issues *Issues, pos lexer.Position, x *xmlDecl) *TypeDecl {
	kind, ok := markupDeclKinds[x.XMLName.Local]
	if !ok {
		issues.add(SeverityError, pos, "unknown element <%s>", x.XMLName.Local)
		return nil
	}
	d := &TypeDecl{Pos: pos, Kind: kind, Name: x.Name}
	for i := range x.Extends {
		d.Extends = append(d.Extends, TypeRef{Pos: pos, Name: x.Extends[i].Name})
	}
	for i := range x.Interfaces {
		d.Interfaces = append(d.Interfaces, TypeRef{Pos: pos, Name: x.Interfaces[i].Name})
	}
	if x.Parameters != nil {
		s := &ParametersSection{Pos: pos}
		for i := range x.Parameters.Properties {
			s.Items = append(s.Items, ParamItem{Property: markupProperty(&x.Parameters.Properties[i], pos)})
		}
		for i := range x.Parameters.Params {
			p := &x.Parameters.Params[i]
			s.Items = append(s.Items, ParamItem{Param: &ParamDecl{
				Pos:      pos,
				Volatile: p.Volatile,
				Type:     p.Type,
				Name:     p.Name,
				Value:    markupExpr(issues, pos, p.Value),
			}})
		}
		d.Sections = append(d.Sections, Section{Parameters: s})
	}
	if x.Gates != nil {
		s := &GatesSection{Pos: pos}
		for i := range x.Gates.Gates {
			g := &x.Gates.Gates[i]
			s.Gates = append(s.Gates, GateDecl{
				Pos:    pos,
				Dir:    g.Dir,
				Name:   g.Name,
				Vector: g.Vector || g.Size != "",
				Size:   markupExpr(issues, pos, g.Size),
			})
		}
		d.Sections = append(d.Sections, Section{Gates: s})
	}
	if x.Types != nil {
		s := &TypesSection{Pos: pos}
		for i := range x.Types.Decls {
			if inner := markupDecl(issues, pos, &x.Types.Decls[i]); inner != nil {
				s.Decls = append(s.Decls, inner)
			}
		}
		d.Sections = append(d.Sections, Section{Types: s})
	}
	if x.Submodules != nil {
		s := &SubmodulesSection{Pos: pos}
		for i := range x.Submodules.Submodules {
			sub := &x.Submodules.Submodules[i]
			s.Submodules = append(s.Submodules, SubmoduleDecl{
				Pos:  pos,
				Name: sub.Name,
				Type: TypeRef{Pos: pos, Name: sub.Type},
			})
		}
		d.Sections = append(d.Sections, Section{Submodules: s})
	}
	if x.Connections != nil {
		s := &ConnectionsSection{Pos: pos, AllowUnconnected: x.Connections.AllowUnconnected}
		for i := range x.Connections.Connections {
			if c := markupConnection(issues, pos, &x.Connections.Connections[i]); c != nil {
				s.Connections = append(s.Connections, *c)
			}
		}
		d.Sections = append(d.Sections, Section{Connections: s})
	}
	return d
}

func markupExpr(issues *Issues, pos lexer.Position, value string) *Expr {
	if value == "" {
		return nil
	}
	e, err := exprParser.ParseString(pos.Filename, value)
	if err != nil {
		issues.add(SeverityWarning, pos, "cannot parse value '%s'", value)
		return nil
	}
	return e
}

func markupEndpoint(issues *Issues, pos lexer.Position, value string) *Endpoint {
	e, err := endpointParser.ParseString(pos.Filename, value)
	if err != nil {
		issues.add(SeverityWarning, pos, "cannot parse connection endpoint '%s'", value)
		return nil
	}
	return e
}

func markupConnection(issues *Issues, pos lexer.Position, x *xmlConnection) *ConnectionDecl {
	from := markupEndpoint(issues, pos, x.Src)
	to := markupEndpoint(issues, pos, x.Dest)
	if from == nil || to == nil {
		return nil
	}
	c := &ConnectionDecl{Pos: pos, From: *from, DirA: "-->"}
	if x.Channel == "" {
		c.Via = *to
		return c
	}
	via := markupEndpoint(issues, pos, x.Channel)
	if via == nil {
		c.Via = *to
		return c
	}
	c.Via = *via
	c.DirB = "-->"
	c.To = to
	return c
}

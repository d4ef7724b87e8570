/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */

package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// DeclKind identifies the construct a TypeDecl declares.
type DeclKind int

const (
	DeclKind_null DeclKind = iota
	DeclKind_Channel
	DeclKind_ChannelInterface
	DeclKind_SimpleModule
	DeclKind_CompoundModule
	DeclKind_Network
	DeclKind_ModuleInterface
)

func (k *DeclKind) Capture(values []string) error {
	switch values[0] {
	case kwChannel:
		*k = DeclKind_Channel
	case kwChannelInterface:
		*k = DeclKind_ChannelInterface
	case kwSimple:
		*k = DeclKind_SimpleModule
	case kwModule:
		*k = DeclKind_CompoundModule
	case kwNetwork:
		*k = DeclKind_Network
	case kwModuleInterface:
		*k = DeclKind_ModuleInterface
	default:
		return ErrUnknownDeclKind(values[0])
	}
	return nil
}

func (k DeclKind) String() string {
	switch k {
	case DeclKind_Channel:
		return "channel"
	case DeclKind_ChannelInterface:
		return "channel interface"
	case DeclKind_SimpleModule:
		return "simple module"
	case DeclKind_CompoundModule:
		return "compound module"
	case DeclKind_Network:
		return "network"
	case DeclKind_ModuleInterface:
		return "module interface"
	}
	return "unknown"
}

// IsComposite reports whether the declaration may contain inner types,
// submodules and connections.
func (k DeclKind) IsComposite() bool {
	return k == DeclKind_CompoundModule || k == DeclKind_Network
}

// IsInterface reports whether the declaration is a channel or module interface.
func (k DeclKind) IsInterface() bool {
	return k == DeclKind_ChannelInterface || k == DeclKind_ModuleInterface
}

// File is the root of a parsed NDL source unit.
type File struct {
	Pos     lexer.Position
	Package *PackageDecl  `parser:"@@?"`
	Imports []*ImportDecl `parser:"@@*"`
	Items   []FileItem    `parser:"@@*"`
}

// PackageName returns the declared package, or "" for the default package.
func (f *File) PackageName() string {
	if f.Package == nil {
		return ""
	}
	return f.Package.Name
}

// ImportSpecs returns the import specs in source order.
func (f *File) ImportSpecs() []string {
	specs := make([]string, len(f.Imports))
	for i, imp := range f.Imports {
		specs[i] = imp.Spec
	}
	return specs
}

// Decls returns the top-level type declarations in source order.
func (f *File) Decls() []*TypeDecl {
	decls := make([]*TypeDecl, 0, len(f.Items))
	for i := range f.Items {
		if d := f.Items[i].Decl; d != nil {
			decls = append(decls, d)
		}
	}
	return decls
}

// Properties returns the file-level properties in source order.
func (f *File) Properties() []*PropertyDecl {
	props := make([]*PropertyDecl, 0)
	for i := range f.Items {
		if p := f.Items[i].Property; p != nil {
			props = append(props, p)
		}
	}
	return props
}

type FileItem struct {
	Property *PropertyDecl `parser:"(@@ ';')"`
	Decl     *TypeDecl     `parser:"| @@"`
}

type PackageDecl struct {
	Pos  lexer.Position
	Name string `parser:"'package' @Ident (@'.' @Ident)* ';'"`
}

type ImportDecl struct {
	Pos  lexer.Position
	Spec string `parser:"'import' @(Ident|'*') (@'.' @(Ident|'*') | @'*')* ';'"`
}

// PropertyDecl is an @name or @name(value) annotation. The terminating
// semicolon belongs to the surrounding item, not to the property itself,
// because inline parameter properties are not terminated.
type PropertyDecl struct {
	Pos   lexer.Position
	Name  string `parser:"'@' @Ident"`
	Value string `parser:"('(' @(Ident|Number|String|'.'|','|'='|':')* ')')?"`
}

// TypeDecl declares a channel, channel interface, simple module, compound
// module, network or module interface. Networks behave as compound modules
// everywhere except in how they are reported.
type TypeDecl struct {
	Pos        lexer.Position
	Kind       DeclKind  `parser:"@('channelinterface'|'moduleinterface'|'channel'|'simple'|'module'|'network')"`
	Name       string    `parser:"@Ident"`
	Extends    []TypeRef `parser:"('extends' @@ (',' @@)*)?"`
	Interfaces []TypeRef `parser:"('like' @@ (',' @@)*)?"`
	Sections   []Section `parser:"'{' @@* '}'"`

	file *File
	encl *TypeDecl
}

// File returns the source unit the declaration belongs to.
// Available after the link pass.
func (d *TypeDecl) File() *File { return d.file }

// Enclosing returns the declaration this one is nested in, or nil for
// top-level declarations. Available after the link pass.
func (d *TypeDecl) Enclosing() *TypeDecl { return d.encl }

// TypesSection returns the inner types section, or nil.
func (d *TypeDecl) TypesSection() *TypesSection {
	for i := range d.Sections {
		if s := d.Sections[i].Types; s != nil {
			return s
		}
	}
	return nil
}

// DependencyRefs returns the extends and like references, in source order.
func (d *TypeDecl) DependencyRefs() []TypeRef {
	refs := make([]TypeRef, 0, len(d.Extends)+len(d.Interfaces))
	refs = append(refs, d.Extends...)
	refs = append(refs, d.Interfaces...)
	return refs
}

// TypeRef names a type by simple or fully qualified name.
type TypeRef struct {
	Pos  lexer.Position
	Name string `parser:"@Ident (@'.' @Ident)*"`
}

// Section is a union of the body section kinds. At most one field is set.
type Section struct {
	Parameters  *ParametersSection  `parser:"@@"`
	Gates       *GatesSection       `parser:"| @@"`
	Types       *TypesSection       `parser:"| @@"`
	Submodules  *SubmodulesSection  `parser:"| @@"`
	Connections *ConnectionsSection `parser:"| @@"`

	section interface{}
}

type ParametersSection struct {
	Pos   lexer.Position
	Items []ParamItem `parser:"'parameters' ':' @@*"`
}

type ParamItem struct {
	Property *PropertyDecl `parser:"(@@ ';')"`
	Param    *ParamDecl    `parser:"| @@"`
}

// ParamDecl declares or assigns a parameter. Type is empty for
// assignment-only entries.
type ParamDecl struct {
	Pos      lexer.Position
	Volatile bool            `parser:"@'volatile'?"`
	Type     string          `parser:"@('bool'|'int'|'double'|'string'|'xml')?"`
	Name     string          `parser:"@Ident"`
	Props    []*PropertyDecl `parser:"@@*"`
	Value    *Expr           `parser:"('=' @@)? ';'"`
}

type GatesSection struct {
	Pos   lexer.Position
	Gates []GateDecl `parser:"'gates' ':' @@*"`
}

type GateDecl struct {
	Pos    lexer.Position
	Dir    string `parser:"@('input'|'output'|'inout')"`
	Name   string `parser:"@Ident"`
	Vector bool   `parser:"( @'['"`
	Size   *Expr  `parser:"@@? ']' )? ';'"`
}

// TypesSection holds nested type declarations of a composite declaration.
type TypesSection struct {
	Pos   lexer.Position
	Decls []*TypeDecl `parser:"'types' ':' @@*"`
}

type SubmodulesSection struct {
	Pos        lexer.Position
	Submodules []SubmoduleDecl `parser:"'submodules' ':' @@*"`
}

type SubmoduleDecl struct {
	Pos  lexer.Position
	Name string      `parser:"@Ident ':'"`
	Type TypeRef     `parser:"@@"`
	Body []ParamItem `parser:"(('{' @@* '}') | ';')"`
}

type ConnectionsSection struct {
	Pos              lexer.Position
	AllowUnconnected bool             `parser:"'connections' @'allowunconnected'? ':'"`
	Connections      []ConnectionDecl `parser:"@@*"`
}

// ConnectionDecl is either "from --> to;" or "from --> Channel --> to;".
// The middle endpoint names a channel type when To is present.
type ConnectionDecl struct {
	Pos  lexer.Position
	From Endpoint  `parser:"@@"`
	DirA string    `parser:"@Arrow"`
	Via  Endpoint  `parser:"@@"`
	DirB string    `parser:"(@Arrow"`
	To   *Endpoint `parser:"@@)? ';'"`
}

// ChannelRef returns the channel type reference of a three-part connection,
// or nil for plain connections.
func (c *ConnectionDecl) ChannelRef() *TypeRef {
	if c.To == nil {
		return nil
	}
	names := make([]string, len(c.Via.Parts))
	for i := range c.Via.Parts {
		names[i] = c.Via.Parts[i].Name
	}
	return &TypeRef{Pos: c.Via.Pos, Name: strings.Join(names, ".")}
}

// Endpoint is a dotted chain of names with optional vector indices,
// e.g. "out", "queue.in" or "host[2].eth".
type Endpoint struct {
	Pos   lexer.Position
	Parts []EndpointPart `parser:"@@ ('.' @@)*"`
}

type EndpointPart struct {
	Pos   lexer.Position
	Name  string `parser:"@Ident"`
	Index *Expr  `parser:"('[' @@ ']')?"`
}

// Expr is a restricted value expression: a literal, a quantity, a name
// reference, or a default(...) wrapper. Values are carried, never evaluated.
type Expr struct {
	Pos      lexer.Position
	Default  *Expr     `parser:"('default' '(' @@ ')')"`
	Str      *string   `parser:"| @String"`
	Bool     *Boolean  `parser:"| @('true'|'false')"`
	Quantity *Quantity `parser:"| @@"`
	Ref      *TypeRef  `parser:"| @@"`
}

// Quantity is a number with an optional measurement unit, e.g. 100 or 5ms.
type Quantity struct {
	Pos   lexer.Position
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Ident?"`
}

type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "true"
	return nil
}

/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package parser

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	requirepkg "github.com/stretchr/testify/require"
)

//go:embed ndl_example/*.ndl
var exampleFS embed.FS

func Test_BasicUsage(t *testing.T) {

	require := require.New(t)
	file, issues := ParseText("smallnet.ndl", `
package demo.net;

import ndl.*;
import demo.protocols.Tcp;

network SmallNet
{
    types:
        channel Backbone extends DatarateChannel
        {
            parameters:
                double cost = default(1.0);
        }
    submodules:
        a: Node;
        b: Node { address = 2; }
    connections:
        a.port[0] <--> Backbone <--> b.port[0];
}
`)
	require.False(issues.HasError(), "%v", issues)
	require.NotNil(file)

	require.Equal("demo.net", file.PackageName())
	require.Equal([]string{"ndl.*", "demo.protocols.Tcp"}, file.ImportSpecs())

	decls := file.Decls()
	require.Len(decls, 1)
	net := decls[0]
	require.Equal(DeclKind_Network, net.Kind)
	require.Equal("SmallNet", net.Name)
	require.True(net.Kind.IsComposite())
	require.Equal(file, net.File())
	require.Nil(net.Enclosing())

	ts := net.TypesSection()
	require.NotNil(ts)
	require.Len(ts.Decls, 1)
	backbone := ts.Decls[0]
	require.Equal(DeclKind_Channel, backbone.Kind)
	require.Equal("Backbone", backbone.Name)
	require.Equal(net, backbone.Enclosing())
	require.Equal(file, backbone.File())
	require.Len(backbone.Extends, 1)
	require.Equal("DatarateChannel", backbone.Extends[0].Name)

	var conns *ConnectionsSection
	for i := range net.Sections {
		if c := net.Sections[i].Connections; c != nil {
			conns = c
		}
	}
	require.NotNil(conns)
	require.Len(conns.Connections, 1)
	ref := conns.Connections[0].ChannelRef()
	require.NotNil(ref)
	require.Equal("Backbone", ref.Name)

	t.Run("dependency refs cover extends and like", func(t *testing.T) {
		require := requirepkg.New(t)
		refs := backbone.DependencyRefs()
		require.Len(refs, 1)
		require.Equal("DatarateChannel", refs[0].Name)
	})
}

func Test_ParameterValues(t *testing.T) {
	require := require.New(t)
	file, issues := ParseText("node.ndl", `
simple Node
{
    parameters:
        int address = 1;
        volatile double serviceTime @unit(s) = default(5ms);
        string label = "node";
        bool active = true;
        double rate = parent.rate;
}
`)
	require.False(issues.HasError(), "%v", issues)

	var params *ParametersSection
	for i := range file.Decls()[0].Sections {
		if p := file.Decls()[0].Sections[i].Parameters; p != nil {
			params = p
		}
	}
	require.NotNil(params)
	require.Len(params.Items, 5)

	p := params.Items[0].Param
	require.Equal("address", p.Name)
	require.Equal("int", p.Type)
	require.NotNil(p.Value.Quantity)
	require.Equal(float64(1), p.Value.Quantity.Value)
	require.Empty(p.Value.Quantity.Unit)

	p = params.Items[1].Param
	require.True(p.Volatile)
	require.Len(p.Props, 1)
	require.Equal("unit", p.Props[0].Name)
	require.Equal("s", p.Props[0].Value)
	require.NotNil(p.Value.Default)
	require.Equal(float64(5), p.Value.Default.Quantity.Value)
	require.Equal("ms", p.Value.Default.Quantity.Unit)

	p = params.Items[2].Param
	require.NotNil(p.Value.Str)
	require.Equal("node", *p.Value.Str)

	p = params.Items[3].Param
	require.NotNil(p.Value.Bool)
	require.True(bool(*p.Value.Bool))

	p = params.Items[4].Param
	require.NotNil(p.Value.Ref)
	require.Equal("parent.rate", p.Value.Ref.Name)
}

func Test_Gates(t *testing.T) {
	require := require.New(t)
	file, issues := ParseText("gates.ndl", `
simple S
{
    gates:
        input in;
        output out[8];
        inout port[];
}
`)
	require.False(issues.HasError(), "%v", issues)

	var gates *GatesSection
	for i := range file.Decls()[0].Sections {
		if g := file.Decls()[0].Sections[i].Gates; g != nil {
			gates = g
		}
	}
	require.NotNil(gates)
	require.Len(gates.Gates, 3)

	require.Equal("input", gates.Gates[0].Dir)
	require.False(gates.Gates[0].Vector)

	require.Equal("output", gates.Gates[1].Dir)
	require.True(gates.Gates[1].Vector)
	require.Equal(float64(8), gates.Gates[1].Size.Quantity.Value)

	require.Equal("inout", gates.Gates[2].Dir)
	require.True(gates.Gates[2].Vector)
	require.Nil(gates.Gates[2].Size)
}

func Test_ParseExampleFiles(t *testing.T) {
	require := require.New(t)
	entries, err := exampleFS.ReadDir("ndl_example")
	require.NoError(err)
	require.NotEmpty(entries)
	for _, e := range entries {
		content, err := fs.ReadFile(exampleFS, "ndl_example/"+e.Name())
		require.NoError(err)
		file, issues := ParseText(e.Name(), string(content))
		require.False(issues.HasError(), "%s: %v", e.Name(), issues)
		require.False(ValidateStructure(file).HasError(), "%s", e.Name())
		require.False(ValidateSyntax(file).HasError(), "%s", e.Name())
		require.Equal("demo.net", file.PackageName())
	}
}

func Test_SyntaxError(t *testing.T) {
	require := require.New(t)
	file, issues := ParseText("bad.ndl", "simple { }")
	require.Nil(file)
	issue := issues.FirstError()
	require.NotNil(issue)
	require.Contains(issue.Message, "unexpected")
	require.Equal("bad.ndl", issue.Pos.Filename)
}

func Test_ParseFileErrors(t *testing.T) {
	require := require.New(t)
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "missing.ndl"))
	require.Error(err)
}

func Test_ValidateStructure(t *testing.T) {
	parse := func(t *testing.T, text string) *File {
		file, issues := ParseText("test.ndl", text)
		require.False(t, issues.HasError(), "%v", issues)
		return file
	}

	t.Run("gates are not allowed in channels", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateStructure(parse(t, `channel C { gates: input g; }`))
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "'gates' section is not allowed in a channel")
	})

	t.Run("duplicate section", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateStructure(parse(t, `simple S { parameters: int a; parameters: int b; }`))
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "duplicate 'parameters' section")
	})

	t.Run("single extends for non-interface kinds", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateStructure(parse(t, `module M extends A, B { }`))
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "may extend only one base type")
	})

	t.Run("multiple extends for interfaces", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateStructure(parse(t, `moduleinterface I extends A, B { }`))
		require.False(issues.HasError(), "%v", issues)
	})

	t.Run("like is not allowed on interfaces", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateStructure(parse(t, `channelinterface I like J { }`))
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "'like' is not allowed")
	})

	t.Run("inner types only in composite declarations", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateStructure(parse(t, `simple S { types: channel C { } }`))
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "'types' section is not allowed in a simple module")
	})

	t.Run("channel spec must not be indexed", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateStructure(parse(t, `
module M {
    connections:
        a.p[0] --> Ch[1] --> b.p[0];
}`))
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "channel specification")
	})
}

func Test_ValidateSyntax(t *testing.T) {
	parse := func(t *testing.T, text string) *File {
		file, issues := ParseText("test.ndl", text)
		require.False(t, issues.HasError(), "%v", issues)
		return file
	}

	t.Run("reserved word as name", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateSyntax(parse(t, `simple default { }`))
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "'default' is a reserved word")
	})

	t.Run("package segment case warning", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateSyntax(parse(t, `package demo.Net;`))
		require.False(issues.HasError())
		require.Len(issues.Warnings(), 1)
		require.Contains(issues.Warnings()[0].Message, "not all lowercase")
	})

	t.Run("gate vector size must be dimensionless", func(t *testing.T) {
		require := require.New(t)
		issues := ValidateSyntax(parse(t, `simple S { gates: input g[5ms]; }`))
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "dimensionless")
	})

	t.Run("import spec shape", func(t *testing.T) {
		require := require.New(t)
		file := &File{Imports: []*ImportDecl{{Spec: "a..b"}}}
		issue := ValidateSyntax(file).FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "not a valid import spec")
	})

	t.Run("wildcards are valid in import specs", func(t *testing.T) {
		require := require.New(t)
		file := &File{Imports: []*ImportDecl{{Spec: "a.**.b*"}}}
		require.False(ValidateSyntax(file).HasError())
	})

	t.Run("type references must not contain wildcards", func(t *testing.T) {
		require := require.New(t)
		file := &File{Items: []FileItem{{Decl: &TypeDecl{
			Kind:    DeclKind_Channel,
			Name:    "C",
			Extends: []TypeRef{{Name: "ndl.*"}},
		}}}}
		issue := ValidateSyntax(file).FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "not a valid type reference")
	})
}

func Test_Markup(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "net.xml")
	markup := `<?xml version="1.0"?>
<ndl-file>
  <package name="demo.net"/>
  <import import-spec="ndl.*"/>
  <simple-module name="Node">
    <parameters>
      <param type="int" name="address" value="1"/>
    </parameters>
    <gates>
      <gate name="port" type="inout" is-vector="true"/>
    </gates>
  </simple-module>
  <compound-module name="Net">
    <extends name="Base"/>
    <types>
      <channel name="C">
        <interface-name name="IChan"/>
      </channel>
    </types>
    <submodules>
      <submodule name="a" type="Node"/>
    </submodules>
    <connections>
      <connection src="a.port[0]" dest="a.port[1]" channel="C"/>
    </connections>
  </compound-module>
</ndl-file>`
	require.NoError(os.WriteFile(path, []byte(markup), 0600))

	file, issues, err := ParseMarkupFile(path)
	require.NoError(err)
	require.False(issues.HasError(), "%v", issues)

	require.Equal("demo.net", file.PackageName())
	require.Equal([]string{"ndl.*"}, file.ImportSpecs())

	decls := file.Decls()
	require.Len(decls, 2)
	require.Equal(DeclKind_SimpleModule, decls[0].Kind)
	require.Equal("Node", decls[0].Name)

	net := decls[1]
	require.Equal(DeclKind_CompoundModule, net.Kind)
	require.Len(net.Extends, 1)
	require.Equal("Base", net.Extends[0].Name)

	inner := net.TypesSection().Decls[0]
	require.Equal("C", inner.Name)
	require.Equal(net, inner.Enclosing())
	require.Equal("IChan", inner.Interfaces[0].Name)

	require.False(ValidateStructure(file).HasError())
	require.False(ValidateSyntax(file).HasError())

	t.Run("root element is checked", func(t *testing.T) {
		require := requirepkg.New(t)
		bad := filepath.Join(t.TempDir(), "bad.xml")
		require.NoError(os.WriteFile(bad, []byte(`<other/>`), 0600))
		_, issues, err := ParseMarkupFile(bad)
		require.NoError(err)
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "<ndl-file> expected as root element")
	})

	t.Run("unknown elements are rejected", func(t *testing.T) {
		require := requirepkg.New(t)
		bad := filepath.Join(t.TempDir(), "bad.xml")
		require.NoError(os.WriteFile(bad, []byte(`<ndl-file><blob name="x"/></ndl-file>`), 0600))
		_, issues, err := ParseMarkupFile(bad)
		require.NoError(err)
		issue := issues.FirstError()
		require.NotNil(issue)
		require.Contains(issue.Message, "unknown element <blob>")
	})
}

func Test_DeclKind(t *testing.T) {
	require := require.New(t)

	require.Equal("channel", DeclKind_Channel.String())
	require.Equal("compound module", DeclKind_CompoundModule.String())

	require.True(DeclKind_Network.IsComposite())
	require.False(DeclKind_SimpleModule.IsComposite())

	require.True(DeclKind_ModuleInterface.IsInterface())
	require.True(DeclKind_ChannelInterface.IsInterface())
	require.False(DeclKind_Channel.IsInterface())
}

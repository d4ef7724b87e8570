/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// The structural validator checks tree shape: which sections a declaration
// kind may carry, section multiplicity, extends/like arity and gate/param
// field validity. Trees built by the grammar satisfy most of these rules by
// construction; trees read from markup need every one of them.

var allSections = map[string]bool{
	sectionParameters:  true,
	sectionGates:       true,
	sectionTypes:       true,
	sectionSubmodules:  true,
	sectionConnections: true,
}

var allowedSections = map[DeclKind]map[string]bool{
	DeclKind_Channel:          {sectionParameters: true},
	DeclKind_ChannelInterface: {sectionParameters: true},
	DeclKind_SimpleModule:     {sectionParameters: true, sectionGates: true},
	DeclKind_ModuleInterface:  {sectionParameters: true, sectionGates: true},
	DeclKind_CompoundModule:   allSections,
	DeclKind_Network:          allSections,
}

var paramTypes = map[string]bool{
	"": true, "bool": true, "int": true, "double": true, "string": true, "xml": true,
}

var gateDirs = map[string]bool{
	"input": true, "output": true, "inout": true,
}

func validateStructureImpl(file *File) Issues {
	issues := Issues{}
	WalkDecls(file, func(d *TypeDecl) {
		if d.Name == "" {
			issues.add(SeverityError, d.Pos, "declaration has no name")
		}
		if !d.Kind.IsInterface() && len(d.Extends) > 1 {
			issues.add(SeverityError, d.Pos, "a %s may extend only one base type", d.Kind)
		}
		if d.Kind.IsInterface() && len(d.Interfaces) > 0 {
			issues.add(SeverityError, d.Pos, "'like' is not allowed in a %s declaration", d.Kind)
		}
		seen := make(map[string]bool)
		for i := range d.Sections {
			s := &d.Sections[i]
			name, pos := sectionInfo(s)
			if !allowedSections[d.Kind][name] {
				issues.add(SeverityError, pos, "'%s' section is not allowed in a %s", name, d.Kind)
			}
			if seen[name] {
				issues.add(SeverityError, pos, "duplicate '%s' section", name)
			}
			seen[name] = true
			switch v := s.Any().(type) {
			case *ParametersSection:
				for j := range v.Items {
					if p := v.Items[j].Param; p != nil && !paramTypes[p.Type] {
						issues.add(SeverityError, p.Pos, "invalid parameter type '%s'", p.Type)
					}
				}
			case *GatesSection:
				for j := range v.Gates {
					if g := &v.Gates[j]; !gateDirs[g.Dir] {
						issues.add(SeverityError, g.Pos, "invalid gate direction '%s'", g.Dir)
					}
				}
			case *ConnectionsSection:
				for j := range v.Connections {
					c := &v.Connections[j]
					if c.To == nil {
						continue
					}
					for k := range c.Via.Parts {
						if c.Via.Parts[k].Index != nil {
							issues.add(SeverityError, c.Via.Pos, "a channel specification must not contain vector indices")
							break
						}
					}
				}
			}
		}
	})
	return issues
}

func sectionInfo(s *Section) (string, lexer.Position) {
	switch v := s.Any().(type) {
	case *ParametersSection:
		return sectionParameters, v.Pos
	case *GatesSection:
		return sectionGates, v.Pos
	case *TypesSection:
		return sectionTypes, v.Pos
	case *SubmodulesSection:
		return sectionSubmodules, v.Pos
	case *ConnectionsSection:
		return sectionConnections, v.Pos
	}
	return "", lexer.Position{}
}

// The syntax validator checks value-level rules: identifier and name shape,
// reserved words, import spec form and vector size sanity.

func validateSyntaxImpl(file *File) Issues {
	issues := Issues{}
	if file.Package != nil {
		name := file.Package.Name
		if !isValidDottedName(name) {
			issues.add(SeverityError, file.Package.Pos, "'%s' is not a valid package name", name)
		} else {
			for _, seg := range strings.Split(name, ".") {
				if seg != strings.ToLower(seg) {
					issues.add(SeverityWarning, file.Package.Pos, "package name segment '%s' is not all lowercase", seg)
				}
			}
		}
	}
	for _, imp := range file.Imports {
		if !isValidImportSpec(imp.Spec) {
			issues.add(SeverityError, imp.Pos, "'%s' is not a valid import spec", imp.Spec)
		}
	}
	for _, p := range file.Properties() {
		checkPropertyName(&issues, p)
	}
	WalkDecls(file, func(d *TypeDecl) {
		checkName(&issues, d.Pos, d.Name)
		for _, ref := range d.DependencyRefs() {
			checkTypeRef(&issues, &ref)
		}
		for i := range d.Sections {
			switch v := d.Sections[i].Any().(type) {
			case *ParametersSection:
				checkParamItems(&issues, v.Items)
			case *GatesSection:
				for j := range v.Gates {
					checkGate(&issues, &v.Gates[j])
				}
			case *SubmodulesSection:
				for j := range v.Submodules {
					sub := &v.Submodules[j]
					checkName(&issues, sub.Pos, sub.Name)
					checkTypeRef(&issues, &sub.Type)
					checkParamItems(&issues, sub.Body)
				}
			case *ConnectionsSection:
				for j := range v.Connections {
					if ref := v.Connections[j].ChannelRef(); ref != nil {
						checkTypeRef(&issues, ref)
					}
				}
			}
		}
	})
	return issues
}

func checkName(issues *Issues, pos lexer.Position, name string) {
	if !isValidIdent(name) {
		issues.add(SeverityError, pos, "'%s' is not a valid identifier", name)
	} else if reservedWords[name] {
		issues.add(SeverityError, pos, "'%s' is a reserved word", name)
	}
}

func checkTypeRef(issues *Issues, ref *TypeRef) {
	if strings.Contains(ref.Name, "*") || !isValidDottedName(ref.Name) {
		issues.add(SeverityError, ref.Pos, "'%s' is not a valid type reference", ref.Name)
	}
}

func checkPropertyName(issues *Issues, p *PropertyDecl) {
	if !isValidIdent(p.Name) {
		issues.add(SeverityError, p.Pos, "'%s' is not a valid property name", p.Name)
	}
}

func checkParamItems(issues *Issues, items []ParamItem) {
	for i := range items {
		if p := items[i].Property; p != nil {
			checkPropertyName(issues, p)
		}
		if p := items[i].Param; p != nil {
			checkName(issues, p.Pos, p.Name)
			for _, prop := range p.Props {
				checkPropertyName(issues, prop)
			}
		}
	}
}

func checkGate(issues *Issues, g *GateDecl) {
	checkName(issues, g.Pos, g.Name)
	if g.Size == nil || g.Size.Quantity == nil {
		return
	}
	if g.Size.Quantity.Unit != "" {
		issues.add(SeverityError, g.Pos, "gate vector size must be dimensionless")
	}
	if g.Size.Quantity.Value < 0 {
		issues.add(SeverityError, g.Pos, "gate vector size must not be negative")
	}
}

func isValidImportSpec(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" || !importSegRegexp.MatchString(seg) {
			return false
		}
	}
	return true
}

/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */

package parser

const (
	kwChannel          = "channel"
	kwChannelInterface = "channelinterface"
	kwSimple           = "simple"
	kwModule           = "module"
	kwNetwork          = "network"
	kwModuleInterface  = "moduleinterface"
)

const (
	sectionParameters  = "parameters"
	sectionGates       = "gates"
	sectionTypes       = "types"
	sectionSubmodules  = "submodules"
	sectionConnections = "connections"
)

// reservedWords may not be used as declaration, submodule, gate or
// parameter names.
var reservedWords = map[string]bool{
	"package": true, "import": true,
	kwChannel: true, kwChannelInterface: true, kwSimple: true,
	kwModule: true, kwNetwork: true, kwModuleInterface: true,
	"extends": true, "like": true,
	sectionParameters: true, sectionGates: true, sectionTypes: true,
	sectionSubmodules: true, sectionConnections: true,
	"allowunconnected": true,
	"input":            true,
	"output":           true,
	"inout":            true,
	"volatile":         true,
	"bool":             true,
	"int":              true,
	"double":           true,
	"string":           true,
	"xml":              true,
	"true":             true,
	"false":            true,
	"default":          true,
}

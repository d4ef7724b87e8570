/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */

package typecache

const (
	// SourceFileExt is the extension of NDL source files.
	SourceFileExt = ".ndl"

	// PackageFileName is the name of the per-package metadata file.
	PackageFileName = "package.ndl"

	// BuiltinDeclarationsIdentity is the synthetic identity the built-in
	// declarations are registered under. It ends in the package file name
	// so that the built-ins' package metadata participates in lookup.
	BuiltinDeclarationsIdentity = "[built-in-declarations]/" + PackageFileName
)

const patternCacheSize = 128

const structureFailurePrefix = "NDL internal structure validation failure: "

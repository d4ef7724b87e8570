/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package parser

// ParseFile reads and parses a single NDL source file.
// Syntax errors are reported as issues, not as the error value; the error
// is reserved for I/O failures. The returned tree is nil when issues
// contain an error.
func ParseFile(fileName string) (*File, Issues, error) {
	return parseFileImpl(fileName)
}

// ParseText parses NDL source given as a string. fileName is used for
// positions only.
func ParseText(fileName string, content string) (*File, Issues) {
	return parseImpl(fileName, content)
}

// ParseMarkupFile reads the markup (XML) serialization of a source unit and
// rebuilds the AST from it. Error reporting follows ParseFile.
func ParseMarkupFile(fileName string) (*File, Issues, error) {
	return parseMarkupFileImpl(fileName)
}

// ValidateStructure checks tree shape: section legality per declaration
// kind, section multiplicity, extends and like arity, gate and parameter
// field validity.
func ValidateStructure(file *File) Issues {
	return validateStructureImpl(file)
}

// ValidateSyntax checks value-level rules: identifier shape, reserved
// words, import spec and package name form, vector size sanity. It may
// emit warnings; warnings never abort processing.
func ValidateSyntax(file *File) Issues {
	return validateSyntaxImpl(file)
}

/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */

package parser

import (
	"reflect"
	"regexp"
	"strings"
)

var identRegexp = regexp.MustCompile(`^[A-Za-z_]\w*$`)
var importSegRegexp = regexp.MustCompile(`^[\w*]+$`)

func isValidIdent(s string) bool {
	return identRegexp.MatchString(s)
}

// isValidDottedName reports whether s is one or more dot-separated identifiers.
func isValidDottedName(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if !isValidIdent(seg) {
			return false
		}
	}
	return true
}

func extractSection(s any) interface{} {
	v := reflect.ValueOf(s)
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.Ptr && !field.IsNil() {
			return field.Interface()
		}
	}
	panic("undefined section")
}

// Any returns the single non-nil section variant.
func (s *Section) Any() interface{} {
	if s.section == nil {
		s.section = extractSection(*s)
	}
	return s.section
}

// WalkDecls visits every type declaration of the file, inner declarations
// included, parents before children, in source order.
func WalkDecls(file *File, visit func(d *TypeDecl)) {
	for _, d := range file.Decls() {
		walkDecl(d, visit)
	}
}

func walkDecl(d *TypeDecl, visit func(d *TypeDecl)) {
	visit(d)
	for i := range d.Sections {
		if ts := d.Sections[i].Types; ts != nil {
			for _, inner := range ts.Decls {
				walkDecl(inner, visit)
			}
		}
	}
}

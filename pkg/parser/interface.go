/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Issue is a single finding of the parser or of one of the validators.
type Issue struct {
	Severity Severity
	Message  string
	Pos      lexer.Position
}

func (i Issue) String() string {
	if i.Pos.Filename == "" && i.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Pos, i.Severity, i.Message)
}

// Issues is an ordered list of findings. Warnings never abort processing.
type Issues []Issue

func (ii Issues) HasError() bool {
	return ii.FirstError() != nil
}

// FirstError returns the first error-severity issue, or nil.
func (ii Issues) FirstError() *Issue {
	for i := range ii {
		if ii[i].Severity == SeverityError {
			return &ii[i]
		}
	}
	return nil
}

// Warnings returns the warning-severity issues, in order.
func (ii Issues) Warnings() []Issue {
	ww := make([]Issue, 0)
	for i := range ii {
		if ii[i].Severity == SeverityWarning {
			ww = append(ww, ii[i])
		}
	}
	return ww
}

func (ii *Issues) add(s Severity, pos lexer.Position, format string, args ...interface{}) {
	*ii = append(*ii, Issue{Severity: s, Message: fmt.Sprintf(format, args...), Pos: pos})
}

/*
* Copyright (c) 2024-present unTill Pro, Ltd.
* @author Michael Saigachenko
 */
package parser

import (
	"fmt"
)

func ErrUnknownDeclKind(kind string) error {
	return fmt.Errorf("unknown declaration kind '%s'", kind)
}

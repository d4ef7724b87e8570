/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type ndlcParams struct {
	Path       string
	Exclude    string
	Project    string
	NoBuiltins bool
}

// projectManifest is the yaml shape of an NDL project file. Relative source
// folders are resolved against the manifest's own directory.
type projectManifest struct {
	SourceFolders    []string `yaml:"SourceFolders"`
	ExcludedPackages []string `yaml:"ExcludedPackages"`
}

func newTypesCmd() *cobra.Command {
	params := ndlcParams{}
	cmd := &cobra.Command{
		Use:   "types [folders...]",
		Short: "print the fully qualified names of the resolved types",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, _, err := buildCache(&params, args)
			if err != nil {
				return err
			}
			for _, qname := range cache.TypeNames() {
				fmt.Printf("%-16s %s\n", cache.Lookup(qname).Kind(), qname)
			}
			return nil
		},
	}
	initCacheFlags(cmd, &params)
	return cmd
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
	"gopkg.in/yaml.v2"

	"github.com/dsimkit/ndl/pkg/typecache"
)

var errNoSourceFolders = errors.New("no source folders to load")

const defaultProjectManifest = "ndlproject.yaml"

func newCheckCmd() *cobra.Command {
	params := ndlcParams{}
	cmd := &cobra.Command{
		Use:   "check [folders...]",
		Short: "load NDL source folders and resolve every declared type",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, count, err := buildCache(&params, args)
			if err != nil {
				return err
			}
			fmt.Printf("%d files, %d types\n", count, len(cache.TypeNames()))
			return nil
		},
	}
	initCacheFlags(cmd, &params)
	return cmd
}

func initCacheFlags(cmd *cobra.Command, params *ndlcParams) {
	cmd.SilenceErrors = true
	cmd.Flags().StringVarP(&params.Path, "path", "n", "", "';' or ':' separated list of extra source folders; entries that do not exist are skipped")
	cmd.Flags().StringVarP(&params.Exclude, "exclude", "x", "", "';' separated list of package names whose folders are skipped")
	cmd.Flags().StringVarP(&params.Project, "project", "p", "", "path to a yaml project manifest with SourceFolders and ExcludedPackages")
	cmd.Flags().BoolVar(&params.NoBuiltins, "no-builtins", false, "do not register the built-in channel declarations")
}

// buildCache loads the requested sources into a fresh type cache and
// finalizes it. Returns the cache and the number of source files seen.
func buildCache(params *ndlcParams, args []string) (typecache.ITypeCache, int, error) {
	folders, excluded, err := collectSources(params, args)
	if err != nil {
		return nil, 0, err
	}
	if len(folders) == 0 {
		return nil, 0, errNoSourceFolders
	}

	cache := typecache.New()
	if !params.NoBuiltins {
		if err := cache.RegisterBuiltinDeclarations(); err != nil {
			return nil, 0, err
		}
	}

	count := 0
	for _, folder := range folders {
		n, err := cache.LoadSourceFolder(folder, excluded)
		count += n
		if err != nil {
			return nil, count, err
		}
	}
	if err := cache.Finalize(); err != nil {
		return nil, count, err
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("resolved %d types", len(cache.TypeNames())))
	}
	return cache, count, nil
}

// collectSources gathers source folders and exclusions from the manifest,
// the positional arguments and the --path flag, in that order. Without an
// explicit manifest, folders or path entries, ndlproject.yaml from the
// working directory is used when present.
func collectSources(params *ndlcParams, args []string) (folders []string, excluded string, err error) {
	project := params.Project
	if project == "" && len(args) == 0 && params.Path == "" {
		// no sources named anywhere: fall back to the default manifest
		if _, err := os.Stat(defaultProjectManifest); err == nil {
			project = defaultProjectManifest
		}
	}

	exclusions := make([]string, 0)
	if project != "" {
		manifest, manifestDir, err := readProjectManifest(project)
		if err != nil {
			return nil, "", err
		}
		for _, folder := range manifest.SourceFolders {
			if !filepath.IsAbs(folder) {
				folder = filepath.Join(manifestDir, folder)
			}
			folders = append(folders, folder)
		}
		exclusions = append(exclusions, manifest.ExcludedPackages...)
	}

	folders = append(folders, args...)

	if params.Path != "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		folders = append(folders, typecache.ResolveSourceFolders(wd, params.Path)...)
	}

	if params.Exclude != "" {
		exclusions = append(exclusions, params.Exclude)
	}
	return folders, strings.Join(exclusions, ";"), nil
}

func readProjectManifest(path string) (*projectManifest, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, "", err
	}
	manifest := projectManifest{}
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return nil, "", err
	}
	return &manifest, filepath.Dir(abs), nil
}

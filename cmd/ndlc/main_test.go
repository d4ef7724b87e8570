/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestBasicUsage(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/package.ndl": "package demo;\n",
		"src/node.ndl": `package demo;
import ndl.DelayChannel;
simple Node
{
	gates:
		inout port[];
}
`,
		"src/net/smallnet.ndl": `package demo.net;
import demo.Node;
network SmallNet
{
	submodules:
		a: Node;
		b: Node;
	connections:
		a.port[0] <--> b.port[0];
}
`,
		"extra/sensor.ndl": "simple Sensor {}\n",
	})
	src := filepath.Join(dir, "src")

	t.Run("check a source folder", func(t *testing.T) {
		require.NoError(execRootCmd([]string{"ndlc", "check", src}, "1.0.0"))
	})

	t.Run("list the resolved types", func(t *testing.T) {
		require.NoError(execRootCmd([]string{"ndlc", "types", src}, "1.0.0"))
	})

	t.Run("extra folders from the search path flag", func(t *testing.T) {
		pathList := filepath.Join(dir, "extra") + ";" + filepath.Join(dir, "missing")
		require.NoError(execRootCmd([]string{"ndlc", "check", "-n", pathList, src}, "1.0.0"))
	})

	t.Run("excluded packages are skipped", func(t *testing.T) {
		require.NoError(execRootCmd([]string{"ndlc", "check", "-x", "demo.net", src}, "1.0.0"))
	})

	t.Run("project manifest", func(t *testing.T) {
		writeFiles(t, dir, map[string]string{
			"ndlproject.yaml": "SourceFolders:\n  - src\nExcludedPackages:\n  - demo.net\n",
		})
		manifest := filepath.Join(dir, "ndlproject.yaml")
		require.NoError(execRootCmd([]string{"ndlc", "check", "--project", manifest}, "1.0.0"))
	})

	t.Run("default manifest in the working directory", func(t *testing.T) {
		writeFiles(t, dir, map[string]string{
			"ndlproject.yaml": "SourceFolders:\n  - src\nExcludedPackages:\n  - demo.net\n",
		})
		wd, err := os.Getwd()
		require.NoError(err)
		defer func() { require.NoError(os.Chdir(wd)) }()

		require.NoError(os.Chdir(dir))
		require.NoError(execRootCmd([]string{"ndlc", "check"}, "1.0.0"))
	})
}

func TestCheckErrors(t *testing.T) {
	require := require.New(t)

	t.Run("no source folders", func(t *testing.T) {
		err := execRootCmd([]string{"ndlc", "check"}, "1.0.0")
		require.ErrorIs(err, errNoSourceFolders)
	})

	t.Run("unresolved base type", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"bad.ndl": "simple Bad extends Missing {}\n",
		})
		err := execRootCmd([]string{"ndlc", "check", dir}, "1.0.0")
		require.ErrorContains(err, "could not be fully resolved")
	})

	t.Run("builtins can be disabled", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"chan.ndl": "import ndl.*;\nchannel Fast extends DatarateChannel {}\n",
		})
		require.NoError(execRootCmd([]string{"ndlc", "check", dir}, "1.0.0"))

		err := execRootCmd([]string{"ndlc", "check", "--no-builtins", dir}, "1.0.0")
		require.ErrorContains(err, "could not be fully resolved")
	})

	t.Run("missing manifest", func(t *testing.T) {
		err := execRootCmd([]string{"ndlc", "check", "--project", filepath.Join(t.TempDir(), "none.yaml")}, "1.0.0")
		require.Error(err)
	})
}

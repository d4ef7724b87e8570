/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 * @author: Maxim Geraskin
 */

package typecache

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func Test_QNameHelpers(t *testing.T) {
	require := require.New(t)

	require.Equal("a.b", JoinQName("a", "b"))
	require.Equal("b", JoinQName("", "b"))
	require.Equal("a", JoinQName("a", ""))
	require.Equal("", JoinQName("", ""))

	require.Equal("a.b", PackageOf("a.b.C"))
	require.Equal("", PackageOf("C"))

	require.Equal("C", SimpleNameOf("a.b.C"))
	require.Equal("C", SimpleNameOf("C"))

	require.True(IsQualified("a.C"))
	require.False(IsQualified("C"))
	require.False(IsQualified(""))

	require.Equal([]string{"a", "b", "C"}, SegmentsOf("a.b.C"))
	require.Nil(SegmentsOf(""))
}

func Test_QNameHelpers_Fuzz(t *testing.T) {
	segments := []string{"a", "net", "demo", "Node", "x1", "deep_2"}

	fuzz := fuzz.New().NilChance(0).NumElements(1, 6)
	var picks []uint8
	for i := 0; i < 1000; i++ {
		fuzz.Fuzz(&picks)
		parts := make([]string, len(picks))
		for j, p := range picks {
			parts[j] = segments[int(p)%len(segments)]
		}
		qname := strings.Join(parts, ".")

		require.Equal(t, parts[len(parts)-1], SimpleNameOf(qname))
		require.Equal(t, strings.Join(parts[:len(parts)-1], "."), PackageOf(qname))
		require.Equal(t, qname, JoinQName(PackageOf(qname), SimpleNameOf(qname)))
		require.Equal(t, parts, SegmentsOf(qname))
		require.Equal(t, len(parts) > 1, IsQualified(qname))
	}
}

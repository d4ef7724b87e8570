/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 * @author: Maxim Geraskin
 */

package typecache

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Wildcard import specs match dotted qualified names: '*' matches any run
// of characters within one segment, '**' matches across segments. Compiled
// patterns are kept in a small LRU cache keyed by the spec text.

type patternCache struct {
	compiled *lru.Cache[string, *regexp.Regexp]
}

func newPatternCache(size int) *patternCache {
	compiled, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		panic(err)
	}
	return &patternCache{compiled: compiled}
}

func containsWildcards(spec string) bool {
	return strings.Contains(spec, "*")
}

func (pc *patternCache) matches(spec string, qname string) bool {
	re, ok := pc.compiled.Get(spec)
	if !ok {
		re = compilePattern(spec)
		pc.compiled.Add(spec, re)
	}
	return re.MatchString(qname)
}

func compilePattern(spec string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`^`)
	for i := 0; i < len(spec); i++ {
		switch {
		case spec[i] == '*' && i+1 < len(spec) && spec[i+1] == '*':
			b.WriteString(`.*`)
			i++
		case spec[i] == '*':
			b.WriteString(`[^.]*`)
		default:
			b.WriteString(regexp.QuoteMeta(string(spec[i])))
		}
	}
	b.WriteString(`$`)
	return regexp.MustCompile(b.String())
}

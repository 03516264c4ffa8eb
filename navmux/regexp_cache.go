package navmux

import (
	"regexp"
	"sync"
)

// compiledPattern is a patternCache entry. Compile failures are cached
// too, so a malformed template registered repeatedly is parsed once.
type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// patternCache maps generated pattern text to its compiledPattern.
// Routers that register the same template share one *regexp.Regexp, and
// the cache is bounded by the number of distinct templates in the process.
var patternCache sync.Map

// compileRegexp returns the cached result of compiling pattern.
func compileRegexp(pattern string) (*regexp.Regexp, error) {
	v, ok := patternCache.Load(pattern)
	if !ok {
		re, err := regexp.Compile(pattern)
		v, _ = patternCache.LoadOrStore(pattern, compiledPattern{re: re, err: err})
	}

	cp := v.(compiledPattern)
	return cp.re, cp.err
}

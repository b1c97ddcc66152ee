// Package classify implements the fragment classification core: a variadic
// pattern matcher and a two-phase classifier that screens fragments against
// negative categories before scoring them against a positive schema.
package classify

import (
	"regexp"
	"sync"

	"github.com/mzalewski/fragset"
)

// Compile-time interface verification.
var _ fragset.PatternMatcher = (*Matcher)(nil)

// Matcher evaluates regex patterns case-insensitively against any of several
// text views of a fragment. Compiled patterns are cached; the cache is safe
// for concurrent use because crawl workers share one matcher.
type Matcher struct {
	mu    sync.RWMutex
	cache map[string]*regexp.Regexp
}

// NewMatcher creates a new Matcher with an empty pattern cache.
func NewMatcher() *Matcher {
	return &Matcher{cache: make(map[string]*regexp.Regexp)}
}

// Match returns the patterns for which a search succeeds against any of the
// provided texts. The result follows input pattern order, not match position.
// A malformed pattern is skipped rather than failing the whole batch:
// one bad pattern must not block evaluation of the rest.
func (m *Matcher) Match(patterns []string, texts ...string) []string {
	var matched []string
	for _, pattern := range patterns {
		re := m.compile(pattern)
		if re == nil {
			continue
		}
		for _, text := range texts {
			if re.MatchString(text) {
				matched = append(matched, pattern)
				break
			}
		}
	}
	return matched
}

// compile returns the cached regexp for a pattern, compiling it
// case-insensitively on first use. Returns nil for malformed patterns;
// the nil is cached so a bad pattern compiles only once.
func (m *Matcher) compile(pattern string) *regexp.Regexp {
	m.mu.RLock()
	re, ok := m.cache[pattern]
	m.mu.RUnlock()
	if ok {
		return re
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = nil
	}

	m.mu.Lock()
	m.cache[pattern] = re
	m.mu.Unlock()
	return re
}

package sqlbuilder

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// This is a strict subset of the actual allowed identifiers
var validIdentifierRegexp = regexp.MustCompile(`^[a-zA-Z_]\w*$`)

// identifierValidator holds names that have passed validation, so hot table
// and column names skip the regex.  The cache is bounded and goroutine-safe,
// and may be shared by builders used from different goroutines.
type identifierValidator struct {
	cache *lru.Cache[string, struct{}]
}

// newIdentifierValidator returns a validator with a cache of size entries;
// size <= 0 disables caching.
func newIdentifierValidator(size int) *identifierValidator {
	v := &identifierValidator{}
	if size > 0 {
		v.cache, _ = lru.New[string, struct{}](size)
	}
	return v
}

// Returns true if every dot separated part of name is suitable as an
// identifier.
func (v *identifierValidator) valid(name string) bool {
	if v.cache != nil {
		if _, ok := v.cache.Get(name); ok {
			return true
		}
	}

	for _, part := range strings.Split(name, ".") {
		if !validIdentifierRegexp.MatchString(part) {
			return false
		}
	}

	if v.cache != nil {
		v.cache.Add(name, struct{}{})
	}
	return true
}

package graph

import (
	"fmt"
	"strings"
	"sync"
)

var displayNames = struct {
	sync.RWMutex
	m map[string]map[int]string
}{m: make(map[string]map[int]string)}

// RegisterDisplayNames records human readable names for the values of an
// enum. Node packages call it from init. Later registrations for the same
// enum add to or replace earlier entries.
func RegisterDisplayNames(enum string, names map[int]string) {
	displayNames.Lock()
	defer displayNames.Unlock()
	m, ok := displayNames.m[enum]
	if !ok {
		m = make(map[int]string, len(names))
		displayNames.m[enum] = m
	}
	for v, name := range names {
		m[v] = name
	}
}

// DisplayName returns the registered name of an enum value, falling back
// to "enum(value)".
func DisplayName(enum string, value int) string {
	displayNames.RLock()
	defer displayNames.RUnlock()
	if name, ok := displayNames.m[enum][value]; ok {
		return name
	}
	return fmt.Sprintf("%s(%d)", enum, value)
}

// ParseDisplayName is the inverse of DisplayName. Matching ignores case,
// spaces, hyphens and underscores, so "face-corner" finds "Face Corner".
func ParseDisplayName(enum, name string) (int, bool) {
	displayNames.RLock()
	defer displayNames.RUnlock()
	want := foldName(name)
	for v, n := range displayNames.m[enum] {
		if foldName(n) == want {
			return v, true
		}
	}
	return 0, false
}

func foldName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

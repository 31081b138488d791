// pkg/shell/env.go
package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Environment is an immutable set of environment variables for a subprocess.
// Every modifier returns a new Environment; the receiver is left untouched,
// so a base environment can be shared between several commands.
type Environment struct {
	vars map[string]string
}

// FromOS snapshots the environment of the current process
func FromOS() Environment {
	return FromList(os.Environ())
}

// FromList parses KEY=VALUE entries. Later duplicates win.
func FromList(entries []string) Environment {
	vars := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return Environment{vars: vars}
}

// Get returns the value of key and whether it is set
func (e Environment) Get(key string) (string, bool) {
	value, ok := e.vars[key]
	return value, ok
}

// Lookup returns the value of key or an empty string
func (e Environment) Lookup(key string) string {
	return e.vars[key]
}

// With returns a copy of the environment with key set to value
func (e Environment) With(key, value string) Environment {
	vars := make(map[string]string, len(e.vars)+1)
	for k, v := range e.vars {
		vars[k] = v
	}
	vars[key] = value
	return Environment{vars: vars}
}

// WithAppended returns a copy with value appended to the inherited value of key,
// separated by a single space. An unset or empty key is simply set to value.
func (e Environment) WithAppended(key, value string) Environment {
	inherited := e.vars[key]
	if inherited == "" {
		return e.With(key, value)
	}
	if value == "" {
		return e.With(key, inherited)
	}
	return e.With(key, inherited+" "+value)
}

// SplitList splits a PATH-like variable into its entries
func (e Environment) SplitList(key string) []string {
	value := e.vars[key]
	if value == "" {
		return nil
	}
	return filepath.SplitList(value)
}

// Len returns the number of variables
func (e Environment) Len() int {
	return len(e.vars)
}

// Environ returns KEY=VALUE entries sorted by key, suitable for exec.Cmd.Env
func (e Environment) Environ() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, k+"="+e.vars[k])
	}
	return entries
}

// JoinList joins paths with the platform list separator
func JoinList(paths []string) string {
	return strings.Join(paths, string(os.PathListSeparator))
}

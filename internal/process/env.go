package process

import (
	"os"
	"strings"
)

// WithPathList returns environ with key set to entries joined by the OS list
// separator, followed by any value key already had.
func WithPathList(environ []string, key string, entries []string) []string {
	prefix := key + "="
	var existing string
	out := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			existing = strings.TrimPrefix(kv, prefix)
			continue
		}
		out = append(out, kv)
	}

	values := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		if e != "" {
			values = append(values, e)
		}
	}
	if existing != "" {
		values = append(values, existing)
	}
	return append(out, prefix+strings.Join(values, string(os.PathListSeparator)))
}

package azurestorage

import (
	"fmt"
	"path"
	"slices"
)

// Validate reports a malformed glob pattern before any listing happens
func (f Filter) Validate() error {
	if f.Pattern == "" {
		return nil
	}
	if _, err := path.Match(f.Pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", f.Pattern, err)
	}
	return nil
}

// Apply returns the names that pass the filter, keeping their order
func (f Filter) Apply(names []string) []string {
	var out []string
	for _, name := range names {
		if len(f.Names) > 0 && !slices.Contains(f.Names, name) {
			continue
		}
		if f.Pattern != "" {
			if ok, _ := path.Match(f.Pattern, name); !ok {
				continue
			}
		}
		out = append(out, name)
		if f.Max > 0 && len(out) == f.Max {
			break
		}
	}
	return out
}

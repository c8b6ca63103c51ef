// SPDX-License-Identifier: MIT

package mabipack

import (
	"fmt"
	"regexp"
)

// Extract filters are regular expressions matched against internal entry
// names. Multiple patterns combine as OR; an empty set selects everything.

// compileFilters compiles every pattern up front so a bad expression fails
// the whole operation before any entry is touched.
func compileFilters(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	filters := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidFilter, pattern, err)
		}

		filters = append(filters, re)
	}

	return filters, nil
}

// matchAnyFilter reports whether name is selected by the filter set.
func matchAnyFilter(filters []*regexp.Regexp, name string) bool {
	if len(filters) == 0 {
		return true
	}

	for _, re := range filters {
		if re.FindStringIndex(name) != nil {
			return true
		}
	}

	return false
}

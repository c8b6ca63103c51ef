// SPDX-License-Identifier: MIT

package mabipack

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/woozymasta/pathrules"
)

// InputsFromDir walks root in directory-traversal order and returns a pack
// input for every regular file, with entry paths relative to root. The
// traversal order is the container entry order; no sort is applied.
//
// Optional selection rules restrict which walked files are packed; an empty
// rule set selects everything.
func InputsFromDir(root string, opts WalkOptions) ([]Input, error) {
	opts.applyDefaults()

	matcher, err := newInputMatcher(opts.Rules, opts.MatcherOptions)
	if err != nil {
		return nil, err
	}

	var inputs []Input
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: %s is not under %s", ErrInvalidEntryPath, path, root)
		}

		name := filepath.ToSlash(rel)
		if matcher != nil && !matcher.Included(name, false) {
			return nil
		}

		times, err := statFileTimes(path)
		if err != nil {
			return err
		}

		src := path
		inputs = append(inputs, Input{
			Path:  name,
			Times: times,
			Open: func() (io.ReadCloser, error) {
				return os.Open(src)
			},
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("traverse %s: %w", root, err)
	}

	return inputs, nil
}

// newInputMatcher compiles input selection rules; nil means no filtering.
func newInputMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*pathrules.Matcher, error) {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := NormalizePath(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	if len(normalized) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(normalized, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRules, err)
	}

	return matcher, nil
}

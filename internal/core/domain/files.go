package domain

import (
	"path"
	"regexp"
)

// perProcessPattern matches profiler data files produced by an instrumented
// run: a "gmon." stem followed by a numeric process id, optionally with a
// further suffix. "gmon.txt" deliberately does not match so an aggregate
// report is never fed back into the generator.
var perProcessPattern = regexp.MustCompile(`^gmon\.[0-9]+`)

// PerProcessDataFiles filters a file listing down to per-process profiler
// data files. A single instrumented run may fork into several processes,
// each flushing its own data file; all of them belong to the same artifact.
// Order is preserved.
func PerProcessDataFiles(names []string) []string {
	var res []string
	for _, name := range names {
		if perProcessPattern.MatchString(name) {
			res = append(res, name)
		}
	}
	return res
}

// MatchesAny reports whether the file's base name matches any of the glob
// patterns. A malformed pattern simply never matches.
func MatchesAny(name string, patterns []string) bool {
	base := path.Base(name)
	for _, p := range patterns {
		if ok, err := path.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

// FilterByPatterns returns the files whose base names match any of the glob
// patterns, preserving input order.
func FilterByPatterns(names, patterns []string) []string {
	var res []string
	for _, name := range names {
		if MatchesAny(name, patterns) {
			res = append(res, name)
		}
	}
	return res
}

package kernel

import (
	"regexp"
	"sort"
)

// releasePattern matches the X.Y.Z-ABI identifier embedded in kernel package
// names, with an optional trailing flavor (generic, lowlatency, amd64, ...).
var releasePattern = regexp.MustCompile(`(?:^|-)(\d+\.\d+\.\d+-\d+)(?:-([a-z][a-z0-9.-]*))?$`)

// ExtractRelease pulls the kernel release out of a package name, e.g.
// "linux-image-6.8.0-45-generic" yields ("6.8.0-45", "generic", true).
// Signed/unsigned name variants carry the release in the same position.
// Meta packages such as "linux-image-generic" yield ok=false.
func ExtractRelease(name string) (release, flavor string, ok bool) {
	m := releasePattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// StripFlavor reduces a running kernel release as reported by uname -r
// ("6.8.0-45-generic") to the bare release identifier ("6.8.0-45"). A
// release without a recognizable flavor suffix is returned unchanged.
func StripFlavor(release string) string {
	if m := releasePattern.FindStringSubmatch(release); m != nil {
		return m[1]
	}
	return release
}

// CompareReleases compares two release identifiers using the dpkg version
// collation rules: alternating non-digit and digit runs, digit runs compared
// numerically and "~" sorting before anything including the empty string.
// Plain string comparison is wrong here ("5.10" must sort after "5.9").
// Returns <0 if a is older than b, 0 if equal, >0 if newer.
func CompareReleases(a, b string) int {
	return verrevcmp(a, b)
}

// charOrder assigns the dpkg collation weight of a byte: tilde lowest, then
// end-of-string and digits, then letters, then everything else.
func charOrder(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	c := s[i]
	switch {
	case c == '~':
		return -1
	case c >= '0' && c <= '9':
		return 0
	case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		return int(c)
	default:
		return int(c) + 256
	}
}

func isDigit(s string, i int) bool {
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// verrevcmp is the dpkg version fragment comparison.
func verrevcmp(a, b string) int {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		for (i < len(a) && !isDigit(a, i)) || (j < len(b) && !isDigit(b, j)) {
			if d := charOrder(a, i) - charOrder(b, j); d != 0 {
				return d
			}
			i++
			j++
		}
		for isDigit(a, i) && a[i] == '0' {
			i++
		}
		for isDigit(b, j) && b[j] == '0' {
			j++
		}
		firstDiff := 0
		for isDigit(a, i) && isDigit(b, j) {
			if firstDiff == 0 {
				firstDiff = int(a[i]) - int(b[j])
			}
			i++
			j++
		}
		if isDigit(a, i) {
			return 1
		}
		if isDigit(b, j) {
			return -1
		}
		if firstDiff != 0 {
			return firstDiff
		}
	}
	return 0
}

// SortReleasesDesc orders distinct release identifiers newest first.
func SortReleasesDesc(releases []string) {
	sort.SliceStable(releases, func(i, j int) bool {
		return CompareReleases(releases[i], releases[j]) > 0
	})
}

// Package kernel holds the retention-decision logic: parsing dpkg package
// listings, extracting kernel release identifiers, and classifying installed
// kernel packages as keep or purge.
package kernel

import (
	"bufio"
	"io"
	"strings"
)

// PackageClass identifies what part of a kernel a package ships.
type PackageClass string

const (
	ClassImage   PackageClass = "image"
	ClassHeaders PackageClass = "headers"
	ClassModules PackageClass = "modules"
	ClassTools   PackageClass = "tools"
	// ClassMeta covers kernel packages without an extractable release
	// (e.g. linux-image-generic). They track the newest kernel and are
	// never purge candidates.
	ClassMeta PackageClass = "meta"
)

// Package is one installed kernel-related package as reported by dpkg.
type Package struct {
	// Name is the package name with any architecture suffix stripped.
	Name string `json:"name"`
	// Version is the package version column from dpkg.
	Version string `json:"version"`
	// Release is the kernel release extracted from the name, e.g. "6.8.0-45".
	// Empty for meta packages.
	Release string `json:"release,omitempty"`
	// Flavor is the trailing flavor of the name, e.g. "generic" or "amd64".
	Flavor string       `json:"flavor,omitempty"`
	Class  PackageClass `json:"class"`
}

// kernelPrefixes are the package name families that count as kernel packages.
// Longer prefixes first so linux-image-extra is not classified as linux-image.
var kernelPrefixes = []struct {
	prefix string
	class  PackageClass
}{
	{"linux-modules-extra", ClassModules},
	{"linux-image-extra", ClassImage},
	{"linux-cloud-tools", ClassTools},
	{"linux-modules", ClassModules},
	{"linux-headers", ClassHeaders},
	{"linux-image", ClassImage},
	{"linux-tools", ClassTools},
}

// classify returns the package class for a kernel package name, or false if
// the name does not belong to a kernel package family at all.
func classify(name string) (PackageClass, bool) {
	for _, p := range kernelPrefixes {
		if name == p.prefix || strings.HasPrefix(name, p.prefix+"-") {
			return p.class, true
		}
	}
	return "", false
}

// NewPackage builds a Package from a dpkg name/version pair. The second
// return value is false when the name is not a kernel package.
func NewPackage(name, version string) (Package, bool) {
	name = stripArchitecture(name)
	class, ok := classify(name)
	if !ok {
		return Package{}, false
	}
	pkg := Package{Name: name, Version: version, Class: class}
	if release, flavor, ok := ExtractRelease(name); ok {
		pkg.Release = release
		pkg.Flavor = flavor
	} else {
		pkg.Class = ClassMeta
	}
	return pkg, true
}

// stripArchitecture removes a multiarch suffix such as ":amd64".
func stripArchitecture(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return name
}

// ParseDpkgList reads `dpkg --list` output and returns the installed kernel
// packages. Only lines in the installed state ("ii") are considered; header
// and divider lines are skipped.
func ParseDpkgList(r io.Reader) ([]Package, error) {
	var pkgs []Package
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[0] != "ii" {
			continue
		}
		if pkg, ok := NewPackage(fields[1], fields[2]); ok {
			pkgs = append(pkgs, pkg)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pkgs, nil
}

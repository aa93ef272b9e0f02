package kernel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDpkgList = `Desired=Unknown/Install/Remove/Purge/Hold
| Status=Not/Inst/Conf-files/Unpacked/halF-conf/Half-inst/trig-aWait/Trig-pend
|/ Err?=(none)/Reinst-required (Status,Err: uppercase=bad)
||/ Name                                 Version        Architecture Description
+++-====================================-==============-============-=========================
ii  linux-base                           4.9            all          Linux image base package
ii  linux-headers-6.8.0-45-generic       6.8.0-45.45    amd64        Linux kernel headers
ii  linux-headers-6.8.0-49-generic       6.8.0-49.49    amd64        Linux kernel headers
ii  linux-image-6.8.0-45-generic:amd64   6.8.0-45.45    amd64        Signed kernel image generic
ii  linux-image-6.8.0-49-generic         6.8.0-49.49    amd64        Signed kernel image generic
rc  linux-image-6.8.0-40-generic         6.8.0-40.40    amd64        Signed kernel image generic
ii  linux-image-generic                  6.8.0-49.49    amd64        Generic Linux kernel image
ii  linux-modules-extra-6.8.0-45-generic 6.8.0-45.45    amd64        Linux kernel extra modules
ii  linux-tools-common                   6.8.0-49.49    all          Linux kernel tools
`

func TestParseDpkgList(t *testing.T) {
	pkgs, err := ParseDpkgList(strings.NewReader(sampleDpkgList))
	require.NoError(t, err)

	names := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		names = append(names, p.Name)
	}

	// linux-base is not a kernel package family; the rc (removed,
	// config-files) image must be skipped.
	assert.NotContains(t, names, "linux-base")
	assert.NotContains(t, names, "linux-image-6.8.0-40-generic")

	assert.Contains(t, names, "linux-image-6.8.0-49-generic")
	assert.Contains(t, names, "linux-headers-6.8.0-45-generic")
	assert.Contains(t, names, "linux-modules-extra-6.8.0-45-generic")
	assert.Contains(t, names, "linux-image-generic")
	assert.Contains(t, names, "linux-tools-common")
	assert.Len(t, pkgs, 7)
}

func TestParseDpkgList_StripsArchitectureSuffix(t *testing.T) {
	pkgs, err := ParseDpkgList(strings.NewReader(sampleDpkgList))
	require.NoError(t, err)

	for _, p := range pkgs {
		assert.NotContains(t, p.Name, ":", "architecture suffix should be stripped from %q", p.Name)
	}
}

func TestNewPackage_Classification(t *testing.T) {
	cases := []struct {
		name    string
		class   PackageClass
		release string
		flavor  string
	}{
		{"linux-image-6.8.0-45-generic", ClassImage, "6.8.0-45", "generic"},
		{"linux-image-unsigned-6.8.0-45-generic", ClassImage, "6.8.0-45", "generic"},
		{"linux-headers-6.8.0-45", ClassHeaders, "6.8.0-45", ""},
		{"linux-modules-6.8.0-45-generic", ClassModules, "6.8.0-45", "generic"},
		{"linux-modules-extra-6.8.0-45-generic", ClassModules, "6.8.0-45", "generic"},
		{"linux-image-extra-4.15.0-20-generic", ClassImage, "4.15.0-20", "generic"},
		{"linux-tools-6.8.0-45-generic", ClassTools, "6.8.0-45", "generic"},
		{"linux-cloud-tools-6.8.0-45-generic", ClassTools, "6.8.0-45", "generic"},
		{"linux-image-6.1.0-18-amd64", ClassImage, "6.1.0-18", "amd64"},
		// meta packages: no extractable release
		{"linux-image-generic", ClassMeta, "", ""},
		{"linux-headers-generic-hwe-22.04", ClassMeta, "", ""},
		{"linux-tools-common", ClassMeta, "", ""},
	}
	for _, tc := range cases {
		pkg, ok := NewPackage(tc.name, "1.0")
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.class, pkg.Class, tc.name)
		assert.Equal(t, tc.release, pkg.Release, tc.name)
		assert.Equal(t, tc.flavor, pkg.Flavor, tc.name)
	}
}

func TestNewPackage_RejectsNonKernelPackages(t *testing.T) {
	for _, name := range []string{"linux-base", "linux-firmware", "util-linux", "libc6"} {
		_, ok := NewPackage(name, "1.0")
		assert.False(t, ok, name)
	}
}

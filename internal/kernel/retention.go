package kernel

import (
	"fmt"
	"path"
	"sort"
)

// PlanOptions control how installed kernel packages are split into keep and
// purge sets.
type PlanOptions struct {
	// RunningRelease is the bare release of the booted kernel ("6.8.0-45").
	// It is always retained, whether or not a matching package is installed.
	RunningRelease string
	// KeepCount is how many of the most recent distinct releases to retain.
	// Must be at least 1.
	KeepCount int
	// Allowlist holds package names that are never purged. Entries may be
	// exact names or path.Match globs ("linux-image-*-lowlatency").
	Allowlist []string
}

// Plan is the retention decision for one snapshot of installed packages.
type Plan struct {
	Keep           []Package `json:"keep"`
	Purge          []Package `json:"purge"`
	// Releases lists the distinct extractable releases, newest first.
	Releases       []string `json:"releases"`
	RunningRelease string   `json:"runningRelease"`
	KeepCount      int      `json:"keepCount"`
}

// BuildPlan classifies every package as keep or purge. A package is kept when
// any of the following holds: it is a meta package (no extractable release),
// its name matches the allow-list, its release equals the running release, or
// its release is among the KeepCount most recent distinct releases.
func BuildPlan(pkgs []Package, opts PlanOptions) (Plan, error) {
	if opts.KeepCount < 1 {
		return Plan{}, fmt.Errorf("keep count must be at least 1, got %d", opts.KeepCount)
	}
	if opts.RunningRelease == "" {
		return Plan{}, fmt.Errorf("running kernel release is required")
	}

	plan := Plan{
		RunningRelease: opts.RunningRelease,
		KeepCount:      opts.KeepCount,
	}

	seen := map[string]bool{}
	for _, p := range pkgs {
		if p.Release != "" && !seen[p.Release] {
			seen[p.Release] = true
			plan.Releases = append(plan.Releases, p.Release)
		}
	}
	SortReleasesDesc(plan.Releases)

	retained := map[string]bool{opts.RunningRelease: true}
	for i, rel := range plan.Releases {
		if i >= opts.KeepCount {
			break
		}
		retained[rel] = true
	}

	for _, p := range pkgs {
		switch {
		case p.Class == ClassMeta, allowlisted(p.Name, opts.Allowlist), retained[p.Release]:
			plan.Keep = append(plan.Keep, p)
		default:
			plan.Purge = append(plan.Purge, p)
		}
	}
	sortPackages(plan.Keep)
	sortPackages(plan.Purge)
	return plan, nil
}

// PurgeNames returns the package names slated for removal, in plan order.
func (p Plan) PurgeNames() []string {
	names := make([]string, 0, len(p.Purge))
	for _, pkg := range p.Purge {
		names = append(names, pkg.Name)
	}
	return names
}

// Decision reports the classification of a single package under this plan.
func (p Plan) Decision(pkg Package) string {
	for _, purge := range p.Purge {
		if purge.Name == pkg.Name {
			return "PURGE"
		}
	}
	return "KEEP"
}

func allowlisted(name string, allowlist []string) bool {
	for _, entry := range allowlist {
		if entry == name {
			return true
		}
		// malformed globs simply never match
		if ok, err := path.Match(entry, name); err == nil && ok {
			return true
		}
	}
	return false
}

// sortPackages orders newest release first, meta packages (empty release)
// last, ties broken by name so output is deterministic.
func sortPackages(pkgs []Package) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		a, b := pkgs[i], pkgs[j]
		if a.Release != b.Release {
			if a.Release == "" {
				return false
			}
			if b.Release == "" {
				return true
			}
			return CompareReleases(a.Release, b.Release) > 0
		}
		return a.Name < b.Name
	})
}

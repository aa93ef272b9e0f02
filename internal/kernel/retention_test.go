package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPackage(t *testing.T, name string) Package {
	t.Helper()
	pkg, ok := NewPackage(name, "1.0")
	require.True(t, ok, name)
	return pkg
}

func testPackages(t *testing.T) []Package {
	t.Helper()
	names := []string{
		"linux-image-6.8.0-40-generic",
		"linux-headers-6.8.0-40-generic",
		"linux-image-6.8.0-45-generic",
		"linux-headers-6.8.0-45-generic",
		"linux-modules-extra-6.8.0-45-generic",
		"linux-image-6.8.0-49-generic",
		"linux-headers-6.8.0-49-generic",
		"linux-image-generic",
	}
	pkgs := make([]Package, 0, len(names))
	for _, n := range names {
		pkgs = append(pkgs, mustPackage(t, n))
	}
	return pkgs
}

func TestBuildPlan_KeepsRunningAndMostRecent(t *testing.T) {
	plan, err := BuildPlan(testPackages(t), PlanOptions{
		RunningRelease: "6.8.0-45",
		KeepCount:      1,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"6.8.0-49", "6.8.0-45", "6.8.0-40"}, plan.Releases)

	// 6.8.0-49 is the most recent, 6.8.0-45 is running, 6.8.0-40 goes.
	purged := plan.PurgeNames()
	assert.ElementsMatch(t, []string{
		"linux-image-6.8.0-40-generic",
		"linux-headers-6.8.0-40-generic",
	}, purged)
}

func TestBuildPlan_RunningNeverPurged(t *testing.T) {
	plan, err := BuildPlan(testPackages(t), PlanOptions{
		RunningRelease: "6.8.0-40",
		KeepCount:      1,
	})
	require.NoError(t, err)

	for _, p := range plan.Purge {
		assert.NotEqual(t, "6.8.0-40", p.Release)
	}
	// with keep=1 only 6.8.0-45 falls outside running + most recent
	assert.ElementsMatch(t, []string{
		"linux-image-6.8.0-45-generic",
		"linux-headers-6.8.0-45-generic",
		"linux-modules-extra-6.8.0-45-generic",
	}, plan.PurgeNames())
}

func TestBuildPlan_MetaPackagesAlwaysKept(t *testing.T) {
	plan, err := BuildPlan(testPackages(t), PlanOptions{
		RunningRelease: "6.8.0-49",
		KeepCount:      1,
	})
	require.NoError(t, err)

	assert.NotContains(t, plan.PurgeNames(), "linux-image-generic")
}

func TestBuildPlan_AllowlistExactAndGlob(t *testing.T) {
	plan, err := BuildPlan(testPackages(t), PlanOptions{
		RunningRelease: "6.8.0-49",
		KeepCount:      1,
		Allowlist:      []string{"linux-image-6.8.0-40-generic", "linux-headers-*"},
	})
	require.NoError(t, err)

	purged := plan.PurgeNames()
	assert.NotContains(t, purged, "linux-image-6.8.0-40-generic")
	assert.NotContains(t, purged, "linux-headers-6.8.0-40-generic")
	assert.NotContains(t, purged, "linux-headers-6.8.0-45-generic")
	// the rest of the 6.8.0-45 set still goes
	assert.Contains(t, purged, "linux-image-6.8.0-45-generic")
}

func TestBuildPlan_KeepCountCoversEverything(t *testing.T) {
	plan, err := BuildPlan(testPackages(t), PlanOptions{
		RunningRelease: "6.8.0-49",
		KeepCount:      10,
	})
	require.NoError(t, err)
	assert.Empty(t, plan.Purge)
	assert.Len(t, plan.Keep, 8)
}

func TestBuildPlan_RunningNotInstalled(t *testing.T) {
	// running a kernel whose package was already removed must not fail
	plan, err := BuildPlan(testPackages(t), PlanOptions{
		RunningRelease: "6.8.0-50",
		KeepCount:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, "6.8.0-50", plan.RunningRelease)
	assert.ElementsMatch(t, []string{
		"linux-image-6.8.0-40-generic",
		"linux-headers-6.8.0-40-generic",
	}, plan.PurgeNames())
}

func TestBuildPlan_InvalidOptions(t *testing.T) {
	_, err := BuildPlan(testPackages(t), PlanOptions{RunningRelease: "6.8.0-45", KeepCount: 0})
	assert.Error(t, err)

	_, err = BuildPlan(testPackages(t), PlanOptions{KeepCount: 2})
	assert.Error(t, err)
}

func TestBuildPlan_Deterministic(t *testing.T) {
	opts := PlanOptions{RunningRelease: "6.8.0-45", KeepCount: 1}
	first, err := BuildPlan(testPackages(t), opts)
	require.NoError(t, err)
	second, err := BuildPlan(testPackages(t), opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// purge list is ordered: newest release first, then name
	if len(first.Purge) >= 2 {
		assert.Equal(t, "linux-headers-6.8.0-40-generic", first.Purge[0].Name)
		assert.Equal(t, "linux-image-6.8.0-40-generic", first.Purge[1].Name)
	}
}

func TestPlanDecision(t *testing.T) {
	plan, err := BuildPlan(testPackages(t), PlanOptions{RunningRelease: "6.8.0-45", KeepCount: 1})
	require.NoError(t, err)

	assert.Equal(t, "PURGE", plan.Decision(mustPackage(t, "linux-image-6.8.0-40-generic")))
	assert.Equal(t, "KEEP", plan.Decision(mustPackage(t, "linux-image-6.8.0-45-generic")))
	assert.Equal(t, "KEEP", plan.Decision(mustPackage(t, "linux-image-generic")))
}

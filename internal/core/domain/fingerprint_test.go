package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pave/internal/core/domain"
)

func TestComputeFingerprint_Deterministic(t *testing.T) {
	specs := []string{"requests>=2.31", "click"}
	opts := domain.ResolveOptions{IndexURL: "https://pypi.org/simple"}

	fp1 := domain.ComputeFingerprint(domain.DefaultGroup, specs, opts)
	fp2 := domain.ComputeFingerprint(domain.DefaultGroup, specs, opts)

	assert.Equal(t, fp1, fp2)
	assert.Len(t, string(fp1), 16)
}

func TestComputeFingerprint_Sensitivity(t *testing.T) {
	opts := domain.ResolveOptions{}
	base := domain.ComputeFingerprint("dev", []string{"pytest", "ruff"}, opts)

	// Any specifier change invalidates
	changed := domain.ComputeFingerprint("dev", []string{"pytest>=8", "ruff"}, opts)
	assert.NotEqual(t, base, changed)

	// Order is part of the declaration
	reordered := domain.ComputeFingerprint("dev", []string{"ruff", "pytest"}, opts)
	assert.NotEqual(t, base, reordered)

	// Resolver configuration is an input too
	withIndex := domain.ComputeFingerprint("dev", []string{"pytest", "ruff"},
		domain.ResolveOptions{IndexURL: "https://mirror.example/simple"})
	assert.NotEqual(t, base, withIndex)

	// The group name disambiguates otherwise identical declarations
	otherGroup := domain.ComputeFingerprint("docs", []string{"pytest", "ruff"}, opts)
	assert.NotEqual(t, base, otherGroup)
}

func TestComputeFingerprint_GroupIndependence(t *testing.T) {
	opts := domain.ResolveOptions{}
	docs := domain.ComputeFingerprint("docs", []string{"sphinx"}, opts)

	// Changing the dev group's declaration leaves the docs fingerprint alone
	_ = domain.ComputeFingerprint("dev", []string{"pytest", "coverage"}, opts)
	docsAgain := domain.ComputeFingerprint("docs", []string{"sphinx"}, opts)

	assert.Equal(t, docs, docsAgain)
}

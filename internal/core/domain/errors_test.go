package domain_test

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestClassify_KeepsSentinelAndCauseInChain(t *testing.T) {
	cause := &exec.ExitError{}
	err := domain.Classify(domain.ErrInstallFailed, cause)
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrInstallFailed)
	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)
}

func TestClassify_NilCause(t *testing.T) {
	assert.NoError(t, domain.Classify(domain.ErrInstallFailed, nil))
}

func TestClassify_SurvivesMetadataWrapping(t *testing.T) {
	cause := errors.New("exit status 1")
	err := zerr.With(domain.Classify(domain.ErrProvisionFailed, cause), "path", "/tmp/.venv")

	assert.ErrorIs(t, err, domain.ErrProvisionFailed)
	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "environment provisioning failed")
}

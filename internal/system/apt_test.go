package system

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAptClient_PurgeSimulate(t *testing.T) {
	runner := &fakeRunner{output: []byte("Purg linux-image-6.8.0-40-generic\n")}
	var out bytes.Buffer
	client := NewAptClient(runner, "apt-get", &out)

	err := client.Purge(context.Background(), []string{"linux-image-6.8.0-40-generic"}, true)
	require.NoError(t, err)

	assert.Equal(t, "apt-get", runner.gotName)
	assert.Equal(t, []string{"purge", "--simulate", "linux-image-6.8.0-40-generic"}, runner.gotArgs)
	assert.Contains(t, runner.gotEnv, "DEBIAN_FRONTEND=noninteractive")
	assert.Contains(t, out.String(), "Purg linux-image")
}

func TestAptClient_PurgeReal(t *testing.T) {
	runner := &fakeRunner{}
	client := NewAptClient(runner, "", &bytes.Buffer{})

	err := client.Purge(context.Background(), []string{"a", "b"}, false)
	require.NoError(t, err)

	// empty binary falls back to apt-get, real runs pass --assume-yes
	assert.Equal(t, "apt-get", runner.gotName)
	assert.Equal(t, []string{"purge", "--assume-yes", "a", "b"}, runner.gotArgs)
}

func TestAptClient_PurgeNothing(t *testing.T) {
	runner := &fakeRunner{}
	client := NewAptClient(runner, "apt-get", &bytes.Buffer{})

	require.NoError(t, client.Purge(context.Background(), nil, false))
	assert.Empty(t, runner.gotName, "apt must not be invoked for an empty purge set")
}

func TestAptClient_PurgeSurfacesExitCode(t *testing.T) {
	runner := &fakeRunner{err: &ExitError{Command: "apt-get", Code: 100}}
	client := NewAptClient(runner, "apt-get", &bytes.Buffer{})

	err := client.Purge(context.Background(), []string{"a"}, false)
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 100, exitErr.Code)
}

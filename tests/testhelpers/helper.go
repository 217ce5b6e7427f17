// Package testhelpers provides helpers for integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/kndndrj/go-arango/core"
)

// GetContainerProvider returns the container provider type to use for the tests.
// If we detect podman is available, we use it, otherwise we use docker.
func GetContainerProvider() testcontainers.ProviderType {
	if _, err := exec.LookPath("podman"); err == nil {
		fmt.Println("Podman detected. Remember to set TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED=true;")
		return testcontainers.ProviderPodman
	}
	return testcontainers.ProviderDocker
}

// DrainCursor reads every remaining item and returns their plain values.
func DrainCursor(t *testing.T, ctx context.Context, cursor *core.Cursor) []any {
	t.Helper()

	items, err := cursor.All(ctx)
	require.NoError(t, err)

	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, core.ItemValue(it))
	}
	return out
}

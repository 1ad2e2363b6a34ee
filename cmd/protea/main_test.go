package main

import (
	"context"
	"testing"

	"github.com/Gobusters/ectoinject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/protea/pkg/snapshot"
)

// The route handlers resolve their dependencies out of the request context,
// so the container must round-trip: register an instance, activate the
// container by ID, resolve the same instance back.
func TestContainerWiring(t *testing.T) {
	container, err := ectoinject.NewDIDefaultContainer()
	require.NoError(t, err)

	store := snapshot.NewStore()
	require.NoError(t, ectoinject.RegisterInstance[*snapshot.Store](container, store))

	ctx, err := ectoinject.SetActiveContainer(context.Background(), container.GetContainerID())
	require.NoError(t, err)

	_, resolved, err := ectoinject.GetContext[*snapshot.Store](ctx)
	require.NoError(t, err)
	assert.Same(t, store, resolved)
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGo(t *testing.T) {
	f := Go(func() (string, error) { return "token", nil })
	v, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, "token", v)

	boom := errors.New("boom")
	f = Go(func() (string, error) { return "", boom })
	_, err = f.Wait()
	assert.ErrorIs(t, err, boom)
}

func TestResolvedRejected(t *testing.T) {
	v, err := Resolved(42).Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	boom := errors.New("boom")
	_, err = Rejected[int](boom).Wait()
	assert.ErrorIs(t, err, boom)

	select {
	case <-Resolved(1).Done():
	default:
		t.Fatal("resolved future should be done")
	}
}

func TestAwait_ContextEndsFirst(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})
	f := Go(func() (int, error) {
		<-release
		close(finished)
		return 7, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// The operation is not aborted by the abandoned wait.
	close(release)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("operation did not run to completion")
	}
	v, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestAll(t *testing.T) {
	results, err := All(context.Background(),
		Go(func() (int, error) { return 1, nil }),
		Resolved(2),
		Go(func() (int, error) { return 3, nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, results)

	boom := errors.New("boom")
	_, err = All(context.Background(), Resolved(1), Rejected[int](boom))
	assert.ErrorIs(t, err, boom)
}

// pkg/seq/seq_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test strict in-order step execution, early exit, and iteration

package seq_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitmi/k-utils/pkg/errors"
	"github.com/kitmi/k-utils/pkg/seq"
)

// value returns a step producing a fixed value and recording its call order.
func value(v any, calls *[]any) seq.Step {
	return func(ctx context.Context, prev any) (any, error) {
		if calls != nil {
			*calls = append(*calls, v)
		}
		return v, nil
	}
}

func failing(err error) seq.Step {
	return func(ctx context.Context, prev any) (any, error) {
		return nil, err
	}
}

func TestRunCollectsInOrder(t *testing.T) {
	var calls []any
	results, err := seq.Run(context.Background(), []seq.Step{
		value(1, &calls),
		value(2, &calls),
		value(3, &calls),
	})

	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, results)
	assert.Equal(t, []any{1, 2, 3}, calls)
}

func TestRunEmpty(t *testing.T) {
	results, err := seq.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunThreadsPreviousResult(t *testing.T) {
	steps := []seq.Step{
		func(ctx context.Context, prev any) (any, error) {
			assert.Nil(t, prev)
			return 10, nil
		},
		func(ctx context.Context, prev any) (any, error) {
			return prev.(int) * 2, nil
		},
		func(ctx context.Context, prev any) (any, error) {
			return prev.(int) + 1, nil
		},
	}

	results, err := seq.Run(context.Background(), steps)
	require.NoError(t, err)
	assert.Equal(t, []any{10, 20, 21}, results)
}

func TestRunFailFast(t *testing.T) {
	boom := errors.New(errors.ErrExecFailed, "boom")
	var calls []any

	results, err := seq.Run(context.Background(), []seq.Step{
		value(1, &calls),
		failing(boom),
		value(3, &calls),
	})

	require.Error(t, err)
	assert.Equal(t, boom, err, "the step error propagates untransformed")
	assert.Nil(t, results, "partial results are discarded on failure")
	assert.Equal(t, []any{1}, calls, "the step after the failure never runs")
}

func TestRunNoOverlap(t *testing.T) {
	// Each step asserts the previous one has fully finished before it starts.
	running := false
	mk := func() seq.Step {
		return func(ctx context.Context, prev any) (any, error) {
			require.False(t, running, "steps must not overlap")
			running = true
			time.Sleep(time.Millisecond)
			running = false
			return nil, nil
		}
	}

	_, err := seq.Run(context.Background(), []seq.Step{mk(), mk(), mk()})
	require.NoError(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls []any
	_, err := seq.Run(ctx, []seq.Step{value(1, &calls)})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}

func TestUntilFindsFirstMatch(t *testing.T) {
	var calls []any
	m, err := seq.Until(context.Background(), []seq.Step{
		value(false, &calls),
		value(false, &calls),
		value(true, &calls),
		value(false, &calls),
	}, nil)

	require.NoError(t, err)
	assert.True(t, m.Found)
	assert.Equal(t, 2, m.Index)
	assert.Equal(t, true, m.Value)
	assert.Equal(t, []any{false, false, true}, calls, "steps after the match never run")
}

func TestUntilExhausted(t *testing.T) {
	m, err := seq.Until(context.Background(), []seq.Step{
		value(false, nil),
		value(false, nil),
	}, nil)

	require.NoError(t, err)
	assert.False(t, m.Found)
}

func TestUntilCustomPredicate(t *testing.T) {
	m, err := seq.Until(context.Background(), []seq.Step{
		value(1, nil),
		value(0, nil),
		value(3, nil),
	}, func(v any) bool { return v == 0 })

	require.NoError(t, err)
	assert.True(t, m.Found)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, 0, m.Value, "a falsy value can be a genuine match")
}

func TestUntilFailFast(t *testing.T) {
	boom := errors.New(errors.ErrExecFailed, "boom")
	var calls []any

	_, err := seq.Until(context.Background(), []seq.Step{
		value(false, &calls),
		failing(boom),
		value(true, &calls),
	}, nil)

	require.Error(t, err)
	assert.Equal(t, boom, err)
	assert.Equal(t, []any{false}, calls)
}

func TestEachSequence(t *testing.T) {
	out, err := seq.Each(context.Background(), []any{1, 2, 3},
		func(ctx context.Context, v any, k any) (any, error) {
			return v.(int) + k.(int), nil
		})

	require.NoError(t, err)
	assert.Equal(t, []any{1, 3, 5}, out)
}

func TestEachMapping(t *testing.T) {
	out, err := seq.Each(context.Background(), map[string]any{"a": 1, "b": 2},
		func(ctx context.Context, v any, k any) (any, error) {
			return v.(int) * 2, nil
		})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 2, "b": 4}, out)
}

func TestEachMappingStableOrder(t *testing.T) {
	var visited []any
	_, err := seq.Each(context.Background(), map[string]any{"c": 1, "a": 2, "b": 3},
		func(ctx context.Context, v any, k any) (any, error) {
			visited = append(visited, k)
			return v, nil
		})

	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, visited)
}

func TestEachInvalidCollection(t *testing.T) {
	for _, collection := range []any{0, "text", nil, 3.14} {
		_, err := seq.Each(context.Background(), collection,
			func(ctx context.Context, v any, k any) (any, error) {
				return v, nil
			})

		require.Error(t, err, "collection %#v", collection)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	}
}

func TestEachFailFast(t *testing.T) {
	boom := errors.New(errors.ErrInternal, "boom")
	var visited []any

	_, err := seq.Each(context.Background(), []any{1, 2, 3},
		func(ctx context.Context, v any, k any) (any, error) {
			if v == 2 {
				return nil, boom
			}
			visited = append(visited, v)
			return v, nil
		})

	require.Error(t, err)
	assert.Equal(t, boom, err)
	assert.Equal(t, []any{1}, visited)
}

package seq

import (
	"context"
	"sort"

	"github.com/kitmi/k-utils/pkg/dotpath"
	"github.com/kitmi/k-utils/pkg/errors"
	"github.com/kitmi/k-utils/pkg/logging"
)

// Step is a deferred operation. It receives the result of the previous
// step (nil for the first) and produces its own, or fails.
type Step func(ctx context.Context, prev any) (any, error)

// Match is the outcome of Until: the index and value of the first step
// whose result passed the predicate. Found distinguishes a genuine match
// on a falsy value from exhausting the list without one.
type Match struct {
	Index int
	Value any
	Found bool
}

// Run executes steps strictly in order, collecting their results. The
// returned slice has the same length and order as the input. On the first
// failure the error is returned as-is and already-collected results are
// discarded.
//
// Run itself checks the context between steps; cancellation mid-step is
// each step's own business.
func Run(ctx context.Context, steps []Step) ([]any, error) {
	logger := logging.GetLogger("seq")

	results := make([]any, 0, len(steps))
	var prev any
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, err := step(ctx, prev)
		if err != nil {
			logger.Debug().Int("step", i).Err(err).Msg("Step failed, aborting run")
			return nil, err
		}

		results = append(results, value)
		prev = value
	}

	return results, nil
}

// Until executes steps strictly in order until one produces a result that
// passes the predicate, then stops without invoking the remaining steps.
// A nil predicate tests the result's own truthiness. Exhausting the list
// yields Match{Found: false}; a step failure aborts with that error.
func Until(ctx context.Context, steps []Step, pred func(any) bool) (Match, error) {
	if pred == nil {
		pred = dotpath.Truthy
	}

	var prev any
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return Match{}, err
		}

		value, err := step(ctx, prev)
		if err != nil {
			return Match{}, err
		}

		if pred(value) {
			return Match{Index: i, Value: value, Found: true}, nil
		}
		prev = value
	}

	return Match{Found: false}, nil
}

// Iterator is applied to each element of a collection by Each. key is the
// element's int index for sequences or string key for mappings.
type Iterator func(ctx context.Context, value any, key any) (any, error)

// Each applies the iterator to every element of a sequence or mapping, one
// element at a time, and collects the results into the same shape.
//
// Sequences are visited in index order and produce a same-length sequence.
// Mappings are visited in sorted-key order (any stable order satisfies the
// contract; sorted is the simplest stable one) and produce a mapping with
// the same keys. Any other collection shape is an INVALID_INPUT error.
func Each(ctx context.Context, collection any, fn Iterator) (any, error) {
	switch dotpath.KindOf(collection) {
	case dotpath.KindSequence:
		src := collection.([]any)
		out := make([]any, len(src))
		for i, v := range src {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := fn(ctx, v, i)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil

	case dotpath.KindMapping:
		src := collection.(map[string]any)
		keys := make([]string, 0, len(src))
		for k := range src {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(src))
		for _, k := range keys {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := fn(ctx, src[k], k)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil

	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"cannot iterate over %s collection", dotpath.KindOf(collection))
	}
}

// Package seed carries the embedded warm-up query definition.
//
// The document lives in CUE rather than Go literals so the query reads as
// data and the evaluator catches structural mistakes at load time. It is
// decoded through the same JSON path as a client request, so the warm-up
// entry is guaranteed to hit the exact fingerprint a real request would.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/dmfalke/trendline/internal/filter"
)

//go:embed seed.cue
var seedCUE string

// InitialTrendQuery returns the warm-up trend filter, already normalized.
func InitialTrendQuery() (*filter.TrendFilter, error) {
	ctx := cuecontext.New()
	value := ctx.CompileString(seedCUE)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("seed: compile: %w", err)
	}

	query := value.LookupPath(cue.ParsePath("initial_trend_query"))
	if err := query.Err(); err != nil {
		return nil, fmt.Errorf("seed: lookup initial_trend_query: %w", err)
	}

	// Round-trip through JSON so the document passes through the filter
	// types' union decoding, exactly like a request body.
	data, err := query.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("seed: marshal: %w", err)
	}

	var f filter.TrendFilter
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	if err := f.Normalize(); err != nil {
		return nil, fmt.Errorf("seed: normalize: %w", err)
	}
	return &f, nil
}

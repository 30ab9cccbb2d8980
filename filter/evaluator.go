package filter

import (
	"errors"
	"maps"
)

// ErrNoRecords indicates a response without a recognizable list of records.
var ErrNoRecords = errors.New("response contains no record list")

// recordKeys are the object keys searched, in order, for the record list
var recordKeys = []string{"matches", "data"}

// Result is the outcome of applying a filter to a response
type Result struct {
	// Value has the same shape as the input with non-matching records removed
	Value   any
	Total   int
	Matched int
	// Errors holds evaluation failures; those records count as non-matching
	Errors []error
}

// Apply filters the records of a decoded search response. The response may
// be a JSON array of records or an object holding one under "matches" or "data".
func Apply(f Filter, value any) (*Result, error) {
	switch v := value.(type) {
	case []any:
		res := &Result{}
		res.Value = evaluate(f, v, res)
		return res, nil

	case map[string]any:
		for _, key := range recordKeys {
			records, ok := v[key].([]any)
			if !ok {
				continue
			}
			res := &Result{}
			out := maps.Clone(v)
			out[key] = evaluate(f, records, res)
			res.Value = out
			return res, nil
		}
	}

	return nil, ErrNoRecords
}

// evaluate evaluates a filter sequentially against all records
func evaluate(f Filter, records []any, res *Result) []any {
	kept := make([]any, 0, len(records))
	for _, item := range records {
		res.Total++

		record, ok := item.(map[string]any)
		if !ok {
			continue
		}

		match, err := f.Match(record)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		if match {
			res.Matched++
			kept = append(kept, record)
		}
	}
	return kept
}

package batch

import (
	"fmt"

	"DuctSizer/internal/calc/duct"
)

const MaxItems = 500

type DuctBatchInput struct {
	Items []duct.Input `json:"items"`
}

type DuctBatchResult struct {
	Results []duct.Result `json:"results"`
}

// CalculateDuct sizes every item; the first invalid item fails the batch.
func CalculateDuct(in DuctBatchInput) (DuctBatchResult, error) {
	if len(in.Items) == 0 {
		return DuctBatchResult{}, fmt.Errorf("%w: no items", duct.ErrInvalidInput)
	}
	if len(in.Items) > MaxItems {
		return DuctBatchResult{}, fmt.Errorf("%w: %d items, limit is %d", duct.ErrInvalidInput, len(in.Items), MaxItems)
	}
	out := DuctBatchResult{Results: make([]duct.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := duct.Calculate(item)
		if err != nil {
			return DuctBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

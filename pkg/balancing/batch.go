package balancing

import (
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/shopspring/decimal"
)

// ApplyMultiple applies suggestions one at a time, in order, against the original
// snapshot. A failing or panicking suggestion never stops the rest of the batch.
func (e *Engine) ApplyMultiple(suggestions []models.BalancingSuggestion) models.BatchResult {
	return e.applyBatch(suggestions, false)
}

// ApplyMultipleRebased is ApplyMultiple where every successful suggestion's updates are
// folded into a working copy of the snapshot before the next suggestion is evaluated.
func (e *Engine) ApplyMultipleRebased(suggestions []models.BalancingSuggestion) models.BatchResult {
	return e.applyBatch(suggestions, true)
}

func (e *Engine) applyBatch(suggestions []models.BalancingSuggestion, rebase bool) models.BatchResult {
	batch := models.BatchResult{
		Successful: []models.BatchItem{},
		Failed:     []models.BatchItem{},
		Updates:    []models.ShiftUpdate{},
		Summary:    models.BatchSummary{Total: len(suggestions)},
	}

	snap := e.Snapshot
	hoursMoved := decimal.Zero
	for i, s := range suggestions {
		result := e.applyOn(snap, s)
		item := models.BatchItem{Index: i, Suggestion: s, Result: result}

		if !result.Success {
			batch.Failed = append(batch.Failed, item)
			continue
		}

		batch.Successful = append(batch.Successful, item)
		batch.Updates = append(batch.Updates, result.Updates...)
		batch.Summary.TotalShiftsModified += result.Summary.ShiftsModified
		hoursMoved = hoursMoved.Add(decimal.NewFromFloat(result.Summary.HoursRedistributed))
		if rebase {
			snap = snap.WithUpdates(result.Updates)
		}
	}

	batch.Summary.Successful = len(batch.Successful)
	batch.Summary.Failed = len(batch.Failed)
	batch.Summary.TotalHoursRedistributed = hoursMoved.InexactFloat64()
	return batch
}

/* batch.go
 * Scores many brackets at once against a single snapshot of the results
 * Authors: Zachary Bower
 */

package logic

import (
	"context"
	"runtime"

	"madness-pool/api/shared"

	"golang.org/x/sync/errgroup"
)

// ScoreBrackets is the concurrent version of UpdateLeaderboardScores.
// Preconditions: receives the brackets, the results, the current round and the number of workers (<= 0 uses the
// number of CPUs)
// Postconditions: results is copied once before any bracket is scored, so every bracket in the batch is scored against
// the same snapshot even if the caller changes results afterwards. Returns the scored brackets in input order, or the
// context error if ctx is cancelled first
func ScoreBrackets(ctx context.Context, brackets []shared.Bracket, results Results, currentRound int, workers int) ([]shared.Bracket, error) {
	snapshot := results.Clone()
	out := make([]shared.Bracket, len(brackets))
	if len(brackets) == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range brackets {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out[i] = UpdateBracketScoring(brackets[i], snapshot, currentRound)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

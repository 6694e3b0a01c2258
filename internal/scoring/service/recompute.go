package service

import (
	"context"
	"sync"
	"time"

	"pipeline_crm_backend/internal/scoring/domain"
	"pipeline_crm_backend/platform/apperr"

	"golang.org/x/sync/errgroup"
)

// RecomputeResult reports the outcome of one bulk recompute run.
type RecomputeResult struct {
	Generation int64
	Total      int
	Updated    int
	Unchanged  int
	Failed     int
}

// RecomputeAll re-evaluates the whole lead population against a single
// configuration snapshot read once at the start of the run, so a concurrent
// save can never produce a run that is partially old rules, partially new
// rules. Leads are evaluated in parallel; each write touches only its own
// record and happens only when the score actually changed, which keeps the
// run idempotent and avoids write amplification. Per-lead failures are
// logged and counted, never fatal; only a configuration read failure aborts
// before any lead is touched.
func (s *Service) RecomputeAll(ctx context.Context) (RecomputeResult, error) {
	started := time.Now()

	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return RecomputeResult{}, apperr.Wrap(apperr.KindInternal, "load scoring configuration", err)
	}

	snapshots, err := s.leads.ListSnapshots(ctx)
	if err != nil {
		return RecomputeResult{}, apperr.Wrap(apperr.KindInternal, "list lead snapshots", err)
	}

	result := RecomputeResult{
		Generation: cfg.Generation,
		Total:      len(snapshots),
	}

	scoredAt := time.Now().UTC()

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for _, snapshot := range snapshots {
		snapshot := snapshot
		group.Go(func() error {
			evaluated := domain.Evaluate(snapshot, cfg)

			if snapshot.Score != nil && *snapshot.Score == evaluated.Total {
				mu.Lock()
				result.Unchanged++
				mu.Unlock()
				return nil
			}

			if err := s.leads.UpdateScore(groupCtx, snapshot.ID, evaluated.Total, scoredAt); err != nil {
				s.log.Error("lead score update failed", "leadId", snapshot.ID, "error", err)
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.Updated++
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only propagates context cancellation.
	if err := group.Wait(); err != nil {
		return result, err
	}

	s.log.RecomputeRun(result.Generation, result.Total, result.Updated, result.Unchanged, result.Failed,
		float64(time.Since(started).Milliseconds()))

	return result, nil
}

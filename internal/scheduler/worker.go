package scheduler

import (
	"context"
	"fmt"

	"pipeline_crm_backend/internal/scoring/service"
	"pipeline_crm_backend/platform/config"
	"pipeline_crm_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// ScoreRecomputer is the scoring surface the worker drives.
type ScoreRecomputer interface {
	RecomputeAll(ctx context.Context) (service.RecomputeResult, error)
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	scoring ScoreRecomputer
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, scoring ScoreRecomputer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		scoring: scoring,
		log:     log,
	}

	mux.HandleFunc(TaskScoreRecomputeAll, w.handleScoreRecompute)

	return w, nil
}

func (w *Worker) handleScoreRecompute(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseScoreRecomputePayload(task)
	if err != nil {
		return err
	}

	w.log.Info("score recompute task received", "requestedGeneration", payload.Generation)

	result, err := w.scoring.RecomputeAll(ctx)
	if err != nil {
		return err
	}

	w.log.Info("score recompute task finished",
		"requestedGeneration", payload.Generation,
		"generation", result.Generation,
		"total", result.Total,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"failed", result.Failed,
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

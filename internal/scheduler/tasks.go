package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskScoreRecomputeAll = "scoring.recompute.all"

// ScoreRecomputePayload carries the configuration generation the recompute
// was requested for. The worker always runs against the current config; the
// generation is logged so operators can correlate runs with saves.
type ScoreRecomputePayload struct {
	Generation int64 `json:"generation"`
}

func NewScoreRecomputeTask(payload ScoreRecomputePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskScoreRecomputeAll, data), nil
}

func ParseScoreRecomputePayload(task *asynq.Task) (ScoreRecomputePayload, error) {
	var payload ScoreRecomputePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ScoreRecomputePayload{}, err
	}
	return payload, nil
}

package tasks

import (
	"encoding/json"
	"time"

	"availcal/models"

	"github.com/hibiken/asynq"
)

const TypeSaveAvailability = "availability:save"

// MaxSaveRetry bounds how often a failed save is retried before it is reported back.
const MaxSaveRetry = 3

func NewSaveAvailabilityTask(req models.SaveRequest) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSaveAvailability, b)
	opts := []asynq.Option{
		asynq.MaxRetry(MaxSaveRetry),
		asynq.Timeout(30 * time.Second),
	}

	return task, opts, nil
}

func ParseSaveAvailabilityTask(task *asynq.Task) (models.SaveRequest, error) {
	var req models.SaveRequest
	err := json.Unmarshal(task.Payload(), &req)
	return req, err
}

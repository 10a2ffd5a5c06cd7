package mail

import (
	"context"
	"encoding/json"
	"time"

	"marketplace-service/src/internal/model"
	"marketplace-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

const TypeDemoRequestEmail = "email:demo-request"

// Dispatcher enqueues email jobs for the worker process.
type Dispatcher struct {
	Client *asynq.Client
	Queue  string
	Log    log.Log
}

func NewDispatcher(client *asynq.Client, queue string, logger log.Log) *Dispatcher {
	if queue == "" {
		queue = "default"
	}
	return &Dispatcher{Client: client, Queue: queue, Log: logger}
}

func NewDemoRequestTask(payload *model.DemoRequestEmailTask) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDemoRequestEmail, data), nil
}

func (d *Dispatcher) EnqueueDemoRequest(ctx context.Context, payload *model.DemoRequestEmailTask) error {
	task, err := NewDemoRequestTask(payload)
	if err != nil {
		return err
	}
	info, err := d.Client.EnqueueContext(ctx, task,
		asynq.Queue(d.Queue),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.TaskID("demo-request:"+payload.DemoRequestID),
	)
	if err != nil {
		return err
	}
	d.Log.Info("gateway/mail", "demo request email enqueued", "EnqueueDemoRequest", info.ID)
	return nil
}

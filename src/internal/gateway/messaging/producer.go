package messaging

import (
	"encoding/json"

	"marketplace-service/src/internal/model"
	"marketplace-service/src/pkg/kafka"
	"marketplace-service/src/pkg/log"
)

type Producer[T model.Event] struct {
	Producer kafka.Producer
	Topic    string
	Log      log.Log
}

func (p *Producer[T]) GetTopic() *string {
	return &p.Topic
}

// Send publishes event keyed by its id. A nil Producer means publishing is disabled.
func (p *Producer[T]) Send(event T) error {
	if p.Producer == nil {
		return nil
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.Log.Error("gateway/messaging/producer", "failed to marshal event", "Send", err.Error())
		return err
	}

	if err = p.Producer.Publish(p.Topic, []byte(event.GetId()), value); err != nil {
		p.Log.Error("send-event", "error send message", p.Topic, err.Error())
		return err
	}
	return nil
}

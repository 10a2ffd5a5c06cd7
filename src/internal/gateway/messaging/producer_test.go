package messaging

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"marketplace-service/src/internal/model"
	"marketplace-service/src/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic string
	key   string
	value []byte
}

type recordingProducer struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (r *recordingProducer) Publish(topic string, key, value []byte) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, published{topic: topic, key: string(key), value: value})
	return nil
}

func (r *recordingProducer) Close() error { return nil }

func TestJobProducer_PublishesOnTopic(t *testing.T) {
	rec := &recordingProducer{}
	p := NewJobProducer(rec, log.GetLogger())

	err := p.SendJobOfferCreated(&model.JobOfferEvent{ID: "evt-1", JobOfferID: "offer-1"})
	require.NoError(t, err)

	require.Len(t, rec.sent, 1)
	assert.Equal(t, TopicJobOfferCreated, rec.sent[0].topic)
	assert.Equal(t, "evt-1", rec.sent[0].key)

	var decoded model.JobOfferEvent
	require.NoError(t, json.Unmarshal(rec.sent[0].value, &decoded))
	assert.Equal(t, "offer-1", decoded.JobOfferID)
}

func TestJobProducer_DisabledIsNoop(t *testing.T) {
	p := NewJobProducer(nil, log.GetLogger())
	assert.NoError(t, p.SendJobPostCreated(&model.JobPostEvent{ID: "evt"}))
}

func TestJobProducer_PropagatesPublishError(t *testing.T) {
	p := NewJobProducer(&recordingProducer{err: errors.New("broker down")}, log.GetLogger())
	assert.Error(t, p.SendChatMessagePosted(&model.ChatMessageEvent{ID: "evt"}))
}

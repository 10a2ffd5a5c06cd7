package messaging

import (
	"marketplace-service/src/internal/model"
	"marketplace-service/src/pkg/kafka"
	"marketplace-service/src/pkg/log"
)

const (
	TopicJobPostCreated    = "jobpost-created"
	TopicJobBidSubmitted   = "jobbid-submitted"
	TopicJobOfferCreated   = "joboffer-created"
	TopicTripRecorded      = "trip-recorded"
	TopicChatMessagePosted = "chat-message-posted"
)

type JobProducer struct {
	JobPostProducer     Producer[*model.JobPostEvent]
	JobBidProducer      Producer[*model.JobBidEvent]
	JobOfferProducer    Producer[*model.JobOfferEvent]
	TripProducer        Producer[*model.TripEvent]
	ChatMessageProducer Producer[*model.ChatMessageEvent]
}

func NewJobProducer(producer kafka.Producer, log log.Log) *JobProducer {
	return &JobProducer{
		JobPostProducer:     Producer[*model.JobPostEvent]{Producer: producer, Topic: TopicJobPostCreated, Log: log},
		JobBidProducer:      Producer[*model.JobBidEvent]{Producer: producer, Topic: TopicJobBidSubmitted, Log: log},
		JobOfferProducer:    Producer[*model.JobOfferEvent]{Producer: producer, Topic: TopicJobOfferCreated, Log: log},
		TripProducer:        Producer[*model.TripEvent]{Producer: producer, Topic: TopicTripRecorded, Log: log},
		ChatMessageProducer: Producer[*model.ChatMessageEvent]{Producer: producer, Topic: TopicChatMessagePosted, Log: log},
	}
}

func (p *JobProducer) SendJobPostCreated(event *model.JobPostEvent) error {
	return p.JobPostProducer.Send(event)
}

func (p *JobProducer) SendJobBidSubmitted(event *model.JobBidEvent) error {
	return p.JobBidProducer.Send(event)
}

func (p *JobProducer) SendJobOfferCreated(event *model.JobOfferEvent) error {
	return p.JobOfferProducer.Send(event)
}

func (p *JobProducer) SendTripRecorded(event *model.TripEvent) error {
	return p.TripProducer.Send(event)
}

func (p *JobProducer) SendChatMessagePosted(event *model.ChatMessageEvent) error {
	return p.ChatMessageProducer.Send(event)
}

package event

import (
	"context"
	"hoodly/config"
	"hoodly/infras/kafka"
	"hoodly/internal/domains/activity/model"
	"hoodly/internal/domains/activity/repository"

	"github.com/rs/zerolog/log"
)

// Recorder appends engagement events to the activity log and mirrors them onto
// the activity topic. It runs after the primary state change has already
// committed, so both writes are best effort: failures are logged and never
// surfaced to the caller.
type Recorder struct {
	repo  repository.Activity
	kafka kafka.Client
	cfg   *config.Config
}

func NewRecorder(repo repository.Activity, kafkaClient kafka.Client, cfg *config.Config) *Recorder {
	return &Recorder{
		repo:  repo,
		kafka: kafkaClient,
		cfg:   cfg,
	}
}

func (r *Recorder) Record(ctx context.Context, event model.ActivityEvent) {
	if err := r.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).
			Str("business_id", event.BusinessID).
			Str("event_type", event.EventType).
			Msg("failed to append activity event, reconciliation candidate")

		return
	}

	if err := r.kafka.SendMessages(ctx, r.cfg.Kafka.ActivityTopic, kafka.Message{Key: event.BusinessID, Value: event}); err != nil {
		log.Error().Err(err).
			Str("business_id", event.BusinessID).
			Str("event_type", event.EventType).
			Msg("failed to publish activity event")
	}
}

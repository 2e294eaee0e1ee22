package kafka

import (
	"context"
	"log"

	"simscreen/similarity"
	"simscreen/types"
)

// EventPublisher abstracts the producer side so the screening worker can be
// exercised without a broker.
type EventPublisher interface {
	Publish(key string, event interface{}) error
}

// ScreeningConsumerConfig wires the screening worker to its topic.
type ScreeningConsumerConfig struct {
	Brokers   []string
	Topic     string
	GroupID   string
	Screener  *similarity.Screener
	Publisher EventPublisher
}

// NewScreeningConsumer creates a consumer that screens every received
// submission and publishes the persistable outcome. Screening is best-effort
// enrichment: it always yields an event (possibly "not checked"), and only a
// publish failure leaves the message unmarked for redelivery.
func NewScreeningConsumer(config ScreeningConsumerConfig) (*Consumer, error) {
	return NewConsumer(ConsumerConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
		GroupID: config.GroupID,
		Handler: newScreeningHandler(config.Screener, config.Publisher),
	})
}

func newScreeningHandler(screener *similarity.Screener, publisher EventPublisher) *TypedMessageHandler[SubmissionReceivedEvent] {
	return &TypedMessageHandler[SubmissionReceivedEvent]{
		Validate: func(msg *SubmissionReceivedEvent) bool {
			if msg.SubmissionID == "" {
				log.Printf("Skipping submission event without submission_id")
				return false
			}
			return true
		},
		Process: func(ctx context.Context, msg *SubmissionReceivedEvent) error {
			result := screener.Screen(ctx, types.SubmissionContent{
				Text:     msg.Text,
				FileRefs: msg.FileRefs,
			})

			payload := result.PersistPayload()
			event := ScreeningCompletedEvent{
				SubmissionID:      msg.SubmissionID,
				PlagiarismScore:   payload.PlagiarismScore,
				PlagiarismChecked: payload.PlagiarismChecked,
				PlagiarismReport:  payload.PlagiarismReport,
			}

			if err := publisher.Publish(msg.SubmissionID, event); err != nil {
				log.Printf("Failed to publish screening result for %s: %v", msg.SubmissionID, err)
				return err // Don't mark - allow retry
			}

			log.Printf("Screened submission %s (checked=%v)", msg.SubmissionID, result.Checked)
			return nil
		},
		AlwaysMark: true, // Mark validation failures, but not publish failures
	}
}

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"simscreen/similarity"
)

type capturedEvent struct {
	key   string
	event interface{}
}

type fakePublisher struct {
	events []capturedEvent
	err    error
}

func (p *fakePublisher) Publish(key string, event interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, capturedEvent{key: key, event: event})
	return nil
}

type fixedProvider struct{ percent float64 }

func (p fixedProvider) ScoreText(ctx context.Context, text string) (similarity.CorpusScore, error) {
	return similarity.CorpusScore{Percent: p.percent, Reference: "corpus://doc/1"}, nil
}

func TestScreeningHandlerPublishesResult(t *testing.T) {
	screener := similarity.NewScreener(similarity.ScreenerConfig{Provider: fixedProvider{percent: 25}})
	publisher := &fakePublisher{}
	handler := newScreeningHandler(screener, publisher)

	message, _ := json.Marshal(SubmissionReceivedEvent{
		SubmissionID: "sub-1",
		StudentID:    "stu-9",
		Text:         "submitted answer text",
	})

	shouldMark, err := handler.HandleMessage(context.Background(), message)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !shouldMark {
		t.Fatal("expected message to be marked")
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	event, ok := publisher.events[0].event.(ScreeningCompletedEvent)
	if !ok {
		t.Fatalf("unexpected event type %T", publisher.events[0].event)
	}
	if event.SubmissionID != "sub-1" || !event.PlagiarismChecked {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.PlagiarismScore == nil || *event.PlagiarismScore != 25 {
		t.Fatalf("expected score 25, got %v", event.PlagiarismScore)
	}
}

func TestScreeningHandlerSkipsInvalidEvents(t *testing.T) {
	screener := similarity.NewScreener(similarity.ScreenerConfig{})
	publisher := &fakePublisher{}
	handler := newScreeningHandler(screener, publisher)

	message, _ := json.Marshal(SubmissionReceivedEvent{Text: "no id"})

	shouldMark, err := handler.HandleMessage(context.Background(), message)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !shouldMark {
		t.Fatal("invalid events must still be marked to skip them")
	}
	if len(publisher.events) != 0 {
		t.Fatalf("expected no events, got %d", len(publisher.events))
	}
}

func TestScreeningHandlerRetriesOnPublishFailure(t *testing.T) {
	screener := similarity.NewScreener(similarity.ScreenerConfig{Provider: fixedProvider{}})
	publisher := &fakePublisher{err: errors.New("broker down")}
	handler := newScreeningHandler(screener, publisher)

	message, _ := json.Marshal(SubmissionReceivedEvent{SubmissionID: "sub-2", Text: "text"})

	shouldMark, err := handler.HandleMessage(context.Background(), message)
	if err == nil {
		t.Fatal("expected publish error to propagate")
	}
	if shouldMark {
		t.Fatal("failed publishes must leave the message unmarked for redelivery")
	}
}

func TestScreeningHandlerMarksGarbage(t *testing.T) {
	handler := newScreeningHandler(similarity.NewScreener(similarity.ScreenerConfig{}), &fakePublisher{})

	shouldMark, err := handler.HandleMessage(context.Background(), []byte("not json"))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !shouldMark {
		t.Fatal("undecodable messages must be marked to avoid poison loops")
	}
}

package events

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaPublisher_PublishDigest(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w, topic: "digests"}

	e := DigestEvent{Kind: "today", Day: "2025-03-14", Count: 2, Sent: 1, Failed: 1, At: time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC)}
	if err := p.PublishDigest(context.Background(), e); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}

	msg := w.msgs[0]
	if msg.Topic != "digests" || string(msg.Key) != "today|2025-03-14" {
		t.Fatalf("unexpected topic/key %q %q", msg.Topic, msg.Key)
	}
	var decoded DigestEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, e) {
		t.Fatalf("expected %+v, got %+v", e, decoded)
	}

	carrier := &headerCarrier{headers: msg.Headers}
	if carrier.Get("event_type") != EventTypeDigestSent || carrier.Get("event_id") == "" {
		t.Fatalf("missing event headers: %v", carrier.Keys())
	}
}

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka:9092, ,kafka-2:9092 ")
	want := []string{"kafka:9092", "kafka-2:9092"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if SplitBrokers("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishMessageEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "snappy")

	payload := map[string]int{"count": 3}
	if err := p.PublishMessage(context.Background(), "logs", payload); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	if got := string(w.msgs[0].Value); got != `{"count":3}` {
		t.Fatalf("unexpected value %s", got)
	}
	if w.msgs[0].Topic != "logs" {
		t.Fatalf("unexpected topic %s", w.msgs[0].Topic)
	}
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := newProducer(&fakeWriter{err: boom}, "snappy")

	err := p.Publish(context.Background(), "logs", []byte("k"), "raw")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(); err == nil {
		t.Fatalf("expected error without brokers")
	}
}

func TestNewProducerValidatesOptions(t *testing.T) {
	brokers := WithBrokers([]string{"localhost:9092"})
	if _, err := NewProducer(brokers, WithCompression("brotli")); err == nil {
		t.Fatal("expected unsupported compression error")
	}
	if _, err := NewProducer(brokers, WithRequiredAcks(2)); err == nil {
		t.Fatal("expected required acks error")
	}
}

func TestBatchingIgnoresNonPositive(t *testing.T) {
	cfg := defaultProducerConfig()
	WithBatching(0, -1)(cfg)
	if cfg.BatchSize != 100 || cfg.BatchTimeout != time.Second {
		t.Fatalf("defaults overwritten: %+v", cfg)
	}
	WithBatching(10, 50*time.Millisecond)(cfg)
	if cfg.BatchSize != 10 || cfg.BatchTimeout != 50*time.Millisecond {
		t.Fatalf("batching not applied: %+v", cfg)
	}
}

package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"example.com/performance/internal/events"
	"example.com/performance/internal/metric"
)

// Publisher delivers computed result sets downstream.
type Publisher interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
}

// ScoringHandler evaluates activity sample events and publishes the
// resulting metric values.
type ScoringHandler struct {
	evaluator    *metric.Evaluator
	publisher    Publisher
	resultsTopic string
}

// NewScoringHandler constructs a scoring handler.
func NewScoringHandler(evaluator *metric.Evaluator, publisher Publisher, resultsTopic string) Handler {
	return &ScoringHandler{evaluator: evaluator, publisher: publisher, resultsTopic: resultsTopic}
}

// Handle computes the metric result set for activity.recorded events and
// publishes a performance.computed event.
func (h *ScoringHandler) Handle(ctx context.Context, msg Message) error {
	if msg.Headers["event_type"] != "activity.recorded" {
		return nil
	}

	var evt events.ActivityRecorded
	payload := msg.Payload
	// Handle Confluent Schema Registry wire format (magic byte + 4-byte schema id)
	if len(payload) >= 5 && payload[0] == 0x00 {
		payload = payload[5:]
	}
	if err := json.Unmarshal(payload, &evt); err != nil {
		return err
	}

	act, err := events.BuildActivity(evt)
	if err != nil {
		return fmt.Errorf("activity %s: %w", evt.ActivityID, err)
	}

	results, err := h.evaluator.Compute(act)
	if err != nil {
		return fmt.Errorf("activity %s: %w", evt.ActivityID, err)
	}

	values := results.Values()
	out := events.MetricsComputed{
		EventID:    uuid.NewString(),
		ActivityID: evt.ActivityID,
		TenantID:   evt.TenantID,
		UserID:     evt.UserID,
		Discipline: string(act.Discipline()),
		ComputedAt: time.Now().UTC(),
		Metrics:    make([]events.MetricResult, 0, len(values)),
	}
	for _, v := range values {
		out.Metrics = append(out.Metrics, events.MetricResult{
			Symbol:        v.Symbol,
			Name:          v.Name,
			Value:         v.Value,
			Count:         v.Count,
			Precision:     v.Precision,
			Units:         v.Units,
			ImperialUnits: v.ImperialUnits,
		})
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return err
	}

	err = h.publisher.WriteMessages(ctx, h.resultsTopic, kafka.Message{
		Key:   []byte(evt.ActivityID),
		Value: encoded,
		Time:  out.ComputedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("performance.computed")},
			{Key: "tenant_id", Value: []byte(evt.TenantID)},
		},
	})
	if err != nil {
		return fmt.Errorf("publishing results for %s: %w", evt.ActivityID, err)
	}

	RecordProcessed(msg)
	return nil
}

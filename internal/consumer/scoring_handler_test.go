package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/performance/internal/catalog"
	"example.com/performance/internal/domain"
	"example.com/performance/internal/events"
	"example.com/performance/internal/metric"
	"example.com/performance/internal/zones"
)

type capturingPublisher struct {
	topic string
	msgs  []kafka.Message
}

func (p *capturingPublisher) WriteMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	p.topic = topic
	p.msgs = append(p.msgs, msgs...)
	return nil
}

func newTestEvaluator(t *testing.T) *metric.Evaluator {
	t.Helper()
	store := zones.NewStore()
	store.Add(domain.DisciplineSwim, zones.Range{Speed: 1.2})
	reg := metric.NewRegistry()
	require.NoError(t, catalog.Register(reg, store))
	eval, err := metric.NewEvaluator(reg)
	require.NoError(t, err)
	return eval
}

func recordedEvent(n int) events.ActivityRecorded {
	samples := make([]events.RecordedSample, n)
	for i := range samples {
		samples[i] = events.RecordedSample{OffsetS: float64(i + 1), SpeedMS: 1.2}
	}
	return events.ActivityRecorded{
		ActivityID:      "act-42",
		TenantID:        "tenant",
		UserID:          "user",
		Discipline:      "swim",
		StartedAt:       time.Date(2026, time.March, 5, 7, 0, 0, 0, time.UTC),
		MassKG:          70,
		SampleIntervalS: 1,
		Samples:         samples,
	}
}

func TestScoringHandlerPublishesResults(t *testing.T) {
	publisher := &capturingPublisher{}
	handler := NewScoringHandler(newTestEvaluator(t), publisher, "performance_metrics")

	payload, err := json.Marshal(recordedEvent(600))
	require.NoError(t, err)

	msg := Message{
		Topic:     "activity_samples",
		Payload:   payload,
		Timestamp: time.Now().UTC(),
		Headers:   map[string]string{"event_type": "activity.recorded"},
	}
	require.NoError(t, handler.Handle(context.Background(), msg))

	require.Equal(t, "performance_metrics", publisher.topic)
	require.Len(t, publisher.msgs, 1)
	require.Equal(t, []byte("act-42"), publisher.msgs[0].Key)

	var out events.MetricsComputed
	require.NoError(t, json.Unmarshal(publisher.msgs[0].Value, &out))
	require.NotEmpty(t, out.EventID)
	require.Equal(t, "act-42", out.ActivityID)
	require.Equal(t, "swim", out.Discipline)

	bySymbol := make(map[string]events.MetricResult, len(out.Metrics))
	for _, m := range out.Metrics {
		bySymbol[m.Symbol] = m
	}
	require.Contains(t, bySymbol, catalog.SymbolSwimXPower)
	require.Contains(t, bySymbol, catalog.SymbolSwimScore)
	require.Contains(t, bySymbol, catalog.SymbolActivityScore)
	require.NotContains(t, bySymbol, catalog.SymbolRunScore)
	require.Greater(t, bySymbol[catalog.SymbolSwimXPower].Value, 0.0)
}

func TestScoringHandlerStripsSchemaRegistryFrame(t *testing.T) {
	publisher := &capturingPublisher{}
	handler := NewScoringHandler(newTestEvaluator(t), publisher, "performance_metrics")

	payload, err := json.Marshal(recordedEvent(60))
	require.NoError(t, err)
	framed := append([]byte{0x00, 0x00, 0x00, 0x00, 0x01}, payload...)

	msg := Message{
		Topic:   "activity_samples",
		Payload: framed,
		Headers: map[string]string{"event_type": "activity.recorded"},
	}
	require.NoError(t, handler.Handle(context.Background(), msg))
	require.Len(t, publisher.msgs, 1)
}

func TestScoringHandlerIgnoresOtherEventTypes(t *testing.T) {
	publisher := &capturingPublisher{}
	handler := NewScoringHandler(newTestEvaluator(t), publisher, "performance_metrics")

	msg := Message{
		Topic:   "activity_samples",
		Payload: []byte(`{}`),
		Headers: map[string]string{"event_type": "activity.deleted"},
	}
	require.NoError(t, handler.Handle(context.Background(), msg))
	require.Empty(t, publisher.msgs)
}

func TestScoringHandlerRejectsMalformedSamples(t *testing.T) {
	publisher := &capturingPublisher{}
	handler := NewScoringHandler(newTestEvaluator(t), publisher, "performance_metrics")

	evt := recordedEvent(5)
	evt.Samples[4].OffsetS = 1 // regresses behind sample 4
	payload, err := json.Marshal(evt)
	require.NoError(t, err)

	msg := Message{
		Topic:   "activity_samples",
		Payload: payload,
		Headers: map[string]string{"event_type": "activity.recorded"},
	}
	require.ErrorIs(t, handler.Handle(context.Background(), msg), domain.ErrSampleOutOfOrder)
	require.Empty(t, publisher.msgs)
}

package events

import (
	"fmt"

	"example.com/performance/internal/domain"
)

// BuildActivity maps an ActivityRecorded payload onto the domain model.
func BuildActivity(evt ActivityRecorded) (*domain.Activity, error) {
	act := domain.NewActivity(
		evt.ActivityID,
		domain.ParseDiscipline(evt.Discipline),
		evt.StartedAt,
		evt.MassKG,
		evt.SampleIntervalS,
	)
	for key, value := range evt.Tags {
		act.SetTag(key, value)
	}
	for _, s := range evt.Samples {
		if err := act.AppendSample(domain.Sample{Offset: s.OffsetS, Speed: s.SpeedMS}); err != nil {
			return nil, fmt.Errorf("sample at offset %.3f: %w", s.OffsetS, err)
		}
	}
	return act, nil
}

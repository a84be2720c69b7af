package zones

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/performance/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestThresholdSpeedUnconfigured(t *testing.T) {
	store := NewStore()
	_, ok := store.ThresholdSpeed(domain.DisciplineSwim, date(2026, time.January, 1))
	require.False(t, ok)
}

func TestThresholdSpeedDateRanges(t *testing.T) {
	store := NewStore()
	store.Add(domain.DisciplineSwim, Range{From: date(2025, time.January, 1), To: date(2026, time.January, 1), Speed: 1.1})
	store.Add(domain.DisciplineSwim, Range{From: date(2026, time.January, 1), Speed: 1.25})

	speed, ok := store.ThresholdSpeed(domain.DisciplineSwim, date(2025, time.June, 15))
	require.True(t, ok)
	require.Equal(t, 1.1, speed)

	speed, ok = store.ThresholdSpeed(domain.DisciplineSwim, date(2026, time.June, 15))
	require.True(t, ok)
	require.Equal(t, 1.25, speed)

	_, ok = store.ThresholdSpeed(domain.DisciplineSwim, date(2024, time.June, 15))
	require.False(t, ok)

	// Other disciplines stay unconfigured.
	_, ok = store.ThresholdSpeed(domain.DisciplineRun, date(2026, time.June, 15))
	require.False(t, ok)
}

func TestThresholdSpeedLaterAdditionWins(t *testing.T) {
	store := NewStore()
	store.Add(domain.DisciplineRun, Range{Speed: 3.0})
	store.Add(domain.DisciplineRun, Range{Speed: 3.2})

	speed, ok := store.ThresholdSpeed(domain.DisciplineRun, date(2026, time.March, 1))
	require.True(t, ok)
	require.Equal(t, 3.2, speed)
}

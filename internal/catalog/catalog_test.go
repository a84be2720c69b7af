package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/performance/internal/domain"
	"example.com/performance/internal/metric"
	"example.com/performance/internal/power"
	"example.com/performance/internal/zones"
)

func buildEvaluator(t *testing.T, store *zones.Store) (*metric.Registry, *metric.Evaluator) {
	t.Helper()
	reg := metric.NewRegistry()
	require.NoError(t, Register(reg, store))
	eval, err := metric.NewEvaluator(reg)
	require.NoError(t, err)
	return reg, eval
}

func steadyActivity(t *testing.T, discipline domain.Discipline, speed float64, n int) *domain.Activity {
	t.Helper()
	act := domain.NewActivity("act-1", discipline, time.Date(2026, time.March, 5, 7, 0, 0, 0, time.UTC), 70, 1)
	for i := 1; i <= n; i++ {
		require.NoError(t, act.AppendSample(domain.Sample{Offset: float64(i), Speed: speed}))
	}
	return act
}

func TestSwimActivityEndToEnd(t *testing.T) {
	store := zones.NewStore()
	store.Add(domain.DisciplineSwim, zones.Range{Speed: 1.2})
	_, eval := buildEvaluator(t, store)

	act := steadyActivity(t, domain.DisciplineSwim, 1.2, 3600)
	results, err := eval.Compute(act)
	require.NoError(t, err)

	expectedWatts := power.FromSpeed(70, 1.2)

	xp, ok := results.Lookup(SymbolSwimXPower)
	require.True(t, ok)
	require.InEpsilon(t, expectedWatts, xp.Value, 0.005)
	require.Equal(t, 3600.0, xp.Count)

	tp, ok := results.Lookup("swim_threshold_power")
	require.True(t, ok)
	require.InDelta(t, expectedWatts, tp.Value, 1e-9)

	ri, ok := results.Lookup("swim_relative_intensity")
	require.True(t, ok)
	require.InDelta(t, 1.0, ri.Value, 0.01)
	require.Equal(t, xp.Count, ri.Count)

	score, ok := results.Lookup(SymbolSwimScore)
	require.True(t, ok)
	require.InDelta(t, 100.0, score.Value, 1.0)

	unified, ok := results.Lookup(SymbolActivityScore)
	require.True(t, ok)
	require.Equal(t, score.Value, unified.Value)

	// Other disciplines leave no values behind.
	for _, sym := range []string{SymbolRunXPower, SymbolRunScore, SymbolBikeXPower, SymbolBikeScore} {
		_, ok := results.Lookup(sym)
		require.False(t, ok, "expected %s to be absent for a swim activity", sym)
	}
}

func TestRunActivitySelectsRunScore(t *testing.T) {
	store := zones.NewStore()
	store.Add(domain.DisciplineRun, zones.Range{Speed: 3.0})
	_, eval := buildEvaluator(t, store)

	act := steadyActivity(t, domain.DisciplineRun, 3.2, 1800)
	results, err := eval.Compute(act)
	require.NoError(t, err)

	_, ok := results.Lookup(SymbolSwimXPower)
	require.False(t, ok)

	pace, ok := results.Lookup("run_xpace")
	require.True(t, ok)
	require.Equal(t, "min/km", pace.Units)
	require.Equal(t, "min/mi", pace.ImperialUnits)
	require.Greater(t, pace.Value, 0.0)

	score, ok := results.Lookup(SymbolRunScore)
	require.True(t, ok)
	unified, ok := results.Lookup(SymbolActivityScore)
	require.True(t, ok)
	require.Equal(t, score.Value, unified.Value)
}

func TestOtherDisciplineScoredAsRide(t *testing.T) {
	store := zones.NewStore()
	store.Add(domain.DisciplineBike, zones.Range{Speed: 8.0})
	_, eval := buildEvaluator(t, store)

	act := steadyActivity(t, domain.DisciplineOther, 7.5, 600)
	results, err := eval.Compute(act)
	require.NoError(t, err)

	score, ok := results.Lookup(SymbolBikeScore)
	require.True(t, ok)
	unified, ok := results.Lookup(SymbolActivityScore)
	require.True(t, ok)
	require.Equal(t, score.Value, unified.Value)

	// Bike has no pace metric.
	_, ok = results.Lookup("bike_xpace")
	require.False(t, ok)
}

func TestMissingThresholdConfigScoresZero(t *testing.T) {
	_, eval := buildEvaluator(t, zones.NewStore())

	act := steadyActivity(t, domain.DisciplineSwim, 1.2, 1800)
	results, err := eval.Compute(act)
	require.NoError(t, err)

	xp, _ := results.Lookup(SymbolSwimXPower)
	require.Greater(t, xp.Value, 0.0)

	// Absence of configuration is a zero-valued result, not an error.
	tp, _ := results.Lookup("swim_threshold_power")
	require.Zero(t, tp.Value)
	ri, _ := results.Lookup("swim_relative_intensity")
	require.Zero(t, ri.Value)
	score, _ := results.Lookup(SymbolSwimScore)
	require.Zero(t, score.Value)
	unified, _ := results.Lookup(SymbolActivityScore)
	require.Zero(t, unified.Value)
}

func TestTagOverrideBeatsConfiguredZones(t *testing.T) {
	store := zones.NewStore()
	store.Add(domain.DisciplineSwim, zones.Range{Speed: 1.0})
	_, eval := buildEvaluator(t, store)

	act := steadyActivity(t, domain.DisciplineSwim, 1.2, 60)
	act.SetTag("cv", "1.5")

	results, err := eval.Compute(act)
	require.NoError(t, err)

	tp, _ := results.Lookup("swim_threshold_power")
	require.InDelta(t, power.FromSpeed(70, 1.5), tp.Value, 1e-9)
}

func TestUnparsableTagFallsBackToZones(t *testing.T) {
	store := zones.NewStore()
	store.Add(domain.DisciplineSwim, zones.Range{Speed: 1.0})
	_, eval := buildEvaluator(t, store)

	act := steadyActivity(t, domain.DisciplineSwim, 1.2, 60)
	act.SetTag("cv", "fast")

	results, err := eval.Compute(act)
	require.NoError(t, err)

	tp, _ := results.Lookup("swim_threshold_power")
	require.InDelta(t, power.FromSpeed(70, 1.0), tp.Value, 1e-9)
}

func TestXPaceInvertsToXPower(t *testing.T) {
	_, eval := buildEvaluator(t, zones.NewStore())

	act := steadyActivity(t, domain.DisciplineSwim, 1.3, 900)
	results, err := eval.Compute(act)
	require.NoError(t, err)

	xp, _ := results.Lookup(SymbolSwimXPower)
	pace, ok := results.Lookup("swim_xpace")
	require.True(t, ok)
	require.Greater(t, pace.Value, 0.0)

	// Feed the pace back through the drag model: min/100m -> m/s -> watts.
	speed := 100.0 / (60.0 * pace.Value)
	require.InEpsilon(t, xp.Value, power.FromSpeed(70, speed), 1e-9)
}

func TestCompositeScoreCalibration(t *testing.T) {
	// Exactly one hour at threshold power scores exactly 100.
	require.Equal(t, 100.0, compositeScore(200, 3600, 1, 200))

	require.Zero(t, compositeScore(200, 3600, 1, 0))
	require.Zero(t, relativeIntensity(200, 0))
	require.Equal(t, 1.5, relativeIntensity(300, 200))
}

func TestCatalogPlanRespectsDependencies(t *testing.T) {
	reg, eval := buildEvaluator(t, zones.NewStore())

	position := make(map[string]int)
	for i, sym := range eval.Plan() {
		position[sym] = i
	}
	for _, def := range reg.Definitions() {
		for _, dep := range def.Depends {
			require.Less(t, position[dep], position[def.Symbol],
				"%s must precede %s in the plan", dep, def.Symbol)
		}
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := metric.NewRegistry()
	require.NoError(t, Register(reg, zones.NewStore()))
	require.ErrorIs(t, Register(reg, zones.NewStore()), metric.ErrDuplicateSymbol)
}

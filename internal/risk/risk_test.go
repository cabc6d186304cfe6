package risk

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonline/internal/timewindow"
)

func seedCases(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemory()
	store.Add(AuditCase{TPIN: "1001", TaxpayerName: "Jane Mwila", RiskLevel: LevelHigh, RiskScore: 92,
		Province: "Lusaka", Sector: "Retail", Status: StatusOpen, StartDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)})
	store.Add(AuditCase{TPIN: "2002", TaxpayerName: "Zamtel Supplies Ltd", RiskLevel: LevelMedium, RiskScore: 61,
		Province: "Copperbelt", Sector: "Mining", Status: StatusInReview, StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)})
	store.Add(AuditCase{TPIN: "3003", TaxpayerName: "Banda Farms", RiskLevel: LevelHigh, RiskScore: 88,
		Province: "Eastern", Sector: "Agriculture", Status: StatusClosed, StartDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)})
	return store
}

func marchWindow() timewindow.Window {
	return timewindow.Window{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestListFilteredAppliesWindow(t *testing.T) {
	store := seedCases(t)

	cases, err := store.ListFiltered(context.Background(), Filter{Window: marchWindow()})
	require.NoError(t, err)
	require.Len(t, cases, 2, "the January case falls outside the window")
	assert.Equal(t, 92, cases[0].RiskScore, "highest score first")
}

func TestListFilteredCombinesFiltersWithAND(t *testing.T) {
	store := seedCases(t)

	cases, err := store.ListFiltered(context.Background(), Filter{
		Window:    marchWindow(),
		RiskLevel: LevelHigh,
		Status:    StatusOpen,
	})
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "Jane Mwila", cases[0].TaxpayerName)

	cases, err = store.ListFiltered(context.Background(), Filter{
		Window:    marchWindow(),
		RiskLevel: LevelHigh,
		Sector:    "Mining",
	})
	require.NoError(t, err)
	assert.Empty(t, cases, "no case is high risk AND mining")
}

func TestListFilteredComparesExactValues(t *testing.T) {
	store := seedCases(t)

	// Levels are stored capitalized; a lowercase value matches nothing,
	// mirroring the SQL store's equality comparison.
	cases, err := store.ListFiltered(context.Background(), Filter{
		Window:    marchWindow(),
		RiskLevel: "high",
	})
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestListFilteredHonorsLimit(t *testing.T) {
	store := NewMemory()
	for i := 0; i < DefaultLimit+50; i++ {
		store.Add(AuditCase{TPIN: fmt.Sprintf("%04d", i), RiskLevel: LevelLow, RiskScore: i % 100,
			Status: StatusOpen, StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)})
	}

	cases, err := store.ListFiltered(context.Background(), Filter{Window: marchWindow()})
	require.NoError(t, err)
	assert.Len(t, cases, DefaultLimit)

	cases, err = store.ListFiltered(context.Background(), Filter{Window: marchWindow(), Limit: 10})
	require.NoError(t, err)
	assert.Len(t, cases, 10)
}

func TestCountOpen(t *testing.T) {
	store := seedCases(t)
	count, err := store.CountOpen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

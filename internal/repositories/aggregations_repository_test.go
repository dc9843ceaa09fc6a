package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushi-gajendra/restaurant-insights/models"
)

func TestAggregationRepositoryRequiresLoadedTables(t *testing.T) {
	menuRepo := NewMenuRepository(testLogger())
	orderRepo := NewOrderRepository(testLogger())
	repo := NewAggregationRepository(orderRepo, menuRepo, testLogger())

	_, _, err := repo.GetAggregationData()
	assert.ErrorIs(t, err, models.ErrNotLoaded)
}

func TestAggregationRepositoryReturnsBothSnapshots(t *testing.T) {
	menuRepo := loadedMenu(t, menuItem(1, "Hamburger", "American", "12.95"))
	orderRepo := loadedOrders(t,
		orderLine(1, 100, day(2023, time.January, 5), clock(11, 30, 0), 1))
	repo := NewAggregationRepository(orderRepo, menuRepo, testLogger())

	lines, items, err := repo.GetAggregationData()
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Len(t, items, 1)
}

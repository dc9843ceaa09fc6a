package repositories

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushi-gajendra/restaurant-insights/models"
)

// stubOrderSource feeds fixed rows into Load.
type stubOrderSource struct {
	lines []models.OrderLine
	err   error
}

func (s stubOrderSource) OrderLines(ctx context.Context) ([]models.OrderLine, error) {
	return s.lines, s.err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(h, min, sec int) time.Time {
	return time.Date(0, time.January, 1, h, min, sec, 0, time.UTC)
}

func orderLine(lineID, orderID int64, date, tm time.Time, itemID int64) models.OrderLine {
	return models.OrderLine{
		LineID:    lineID,
		OrderID:   orderID,
		OrderDate: date,
		OrderTime: tm,
		ItemID:    itemID,
	}
}

func loadedOrders(t *testing.T, lines ...models.OrderLine) *OrderRepository {
	t.Helper()
	repo := NewOrderRepository(testLogger())
	require.NoError(t, repo.Load(context.Background(), stubOrderSource{lines: lines}))
	return repo
}

// bulkLines builds one order with n identical lines, line ids starting
// at base.
func bulkLines(orderID int64, n int, base int64) []models.OrderLine {
	lines := make([]models.OrderLine, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, orderLine(base+int64(i), orderID, day(2023, time.March, 1), clock(12, 0, 0), 1))
	}
	return lines
}

func TestOrderRepositoryLoad(t *testing.T) {
	repo := loadedOrders(t,
		orderLine(1, 100, day(2023, time.January, 5), clock(11, 30, 0), 1),
		orderLine(2, 100, day(2023, time.January, 5), clock(11, 30, 0), 2),
		orderLine(3, 101, day(2023, time.February, 9), clock(19, 15, 0), 1),
	)

	assert.True(t, repo.Loaded())
	assert.Equal(t, 3, repo.Size())
	assert.Equal(t, 2, repo.OrderCount())
	assert.Len(t, repo.All(), 3)
}

func TestOrderRepositoryLoadDuplicateLineID(t *testing.T) {
	repo := NewOrderRepository(testLogger())
	err := repo.Load(context.Background(), stubOrderSource{lines: []models.OrderLine{
		orderLine(1, 100, day(2023, time.January, 5), clock(11, 30, 0), 1),
		orderLine(1, 101, day(2023, time.January, 6), clock(12, 0, 0), 2),
	}})

	var loadErr *models.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "order_details", loadErr.Source)
	assert.False(t, repo.Loaded())
}

func TestOrderRepositoryLoadInvalidRow(t *testing.T) {
	repo := NewOrderRepository(testLogger())
	err := repo.Load(context.Background(), stubOrderSource{lines: []models.OrderLine{
		{LineID: 1, OrderID: 100, ItemID: 1}, // missing date
	}})

	var loadErr *models.LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestDateRange(t *testing.T) {
	repo := loadedOrders(t,
		orderLine(1, 100, day(2023, time.February, 9), clock(12, 0, 0), 1),
		orderLine(2, 101, day(2023, time.January, 5), clock(12, 0, 0), 1),
		orderLine(3, 102, day(2023, time.March, 30), clock(12, 0, 0), 1),
	)

	min, max, err := repo.DateRange()
	require.NoError(t, err)
	assert.Equal(t, day(2023, time.January, 5), min)
	assert.Equal(t, day(2023, time.March, 30), max)
}

func TestDateRangeEmptyLog(t *testing.T) {
	repo := loadedOrders(t)

	_, _, err := repo.DateRange()
	var emptyErr *models.EmptyDatasetError
	require.ErrorAs(t, err, &emptyErr)
}

func TestDateRangeNotLoaded(t *testing.T) {
	repo := NewOrderRepository(testLogger())
	_, _, err := repo.DateRange()
	assert.ErrorIs(t, err, models.ErrNotLoaded)
}

func TestLineCountPerOrderSumsToSize(t *testing.T) {
	var lines []models.OrderLine
	lines = append(lines, bulkLines(100, 3, 1)...)
	lines = append(lines, bulkLines(101, 5, 10)...)
	lines = append(lines, bulkLines(102, 1, 20)...)
	repo := loadedOrders(t, lines...)

	counts := repo.LineCountPerOrder()
	assert.Equal(t, map[int64]int{100: 3, 101: 5, 102: 1}, counts)

	sum := 0
	for _, n := range counts {
		sum += n
	}
	assert.Equal(t, repo.Size(), sum)
}

func TestOrdersAboveIsStrict(t *testing.T) {
	var lines []models.OrderLine
	lines = append(lines, bulkLines(100, 13, 1)...)   // counts
	lines = append(lines, bulkLines(101, 12, 100)...) // does not
	lines = append(lines, bulkLines(102, 2, 200)...)
	repo := loadedOrders(t, lines...)

	assert.Equal(t, 1, repo.OrdersAbove(12))
	assert.Equal(t, 2, repo.OrdersAbove(11))
	assert.Equal(t, 0, repo.OrdersAbove(13))
}

func TestOrdersByHourCountsDistinctOrders(t *testing.T) {
	repo := loadedOrders(t,
		orderLine(1, 100, day(2023, time.January, 5), clock(11, 30, 0), 1),
		orderLine(2, 100, day(2023, time.January, 5), clock(11, 30, 0), 2),
		orderLine(3, 101, day(2023, time.January, 5), clock(11, 55, 0), 1),
		orderLine(4, 102, day(2023, time.January, 5), clock(19, 5, 0), 1),
	)

	assert.Equal(t, map[int]int{11: 2, 19: 1}, repo.OrdersByHour())
}

func TestOrdersWriteCSVRoundTrip(t *testing.T) {
	repo := loadedOrders(t,
		orderLine(1, 100, day(2023, time.January, 5), clock(11, 30, 0), 1),
		orderLine(2, 100, day(2023, time.January, 5), clock(11, 30, 0), 2),
		orderLine(3, 101, day(2023, time.February, 9), clock(19, 15, 0), 1),
	)

	var buf bytes.Buffer
	require.NoError(t, repo.WriteCSV(&buf))

	path := writeTempFile(t, "order_details.csv", buf.String())
	src := NewCSVSource("", path, testLogger())
	reloaded := NewOrderRepository(testLogger())
	require.NoError(t, reloaded.Load(context.Background(), src))

	assert.Equal(t, repo.All(), reloaded.All())
}

func TestOrdersWriteCSVNotLoaded(t *testing.T) {
	repo := NewOrderRepository(testLogger())
	var buf bytes.Buffer
	assert.ErrorIs(t, repo.WriteCSV(&buf), models.ErrNotLoaded)
}

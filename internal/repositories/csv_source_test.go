package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushi-gajendra/restaurant-insights/models"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVSourceMenuItems(t *testing.T) {
	path := writeTempFile(t, "menu.csv",
		"menu_item_id,item_name,category,price\n"+
			"1,Hamburger,American,12.95\n"+
			"2,Edamame,Asian,5.00\n")

	src := NewCSVSource(path, "", testLogger())
	items, err := src.MenuItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "Hamburger", items[0].Name)
	assert.Equal(t, "American", items[0].Category)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("12.95")))
}

func TestCSVSourceMenuHeaderAliases(t *testing.T) {
	// The dataset has shipped with terse headers too.
	path := writeTempFile(t, "menu.csv",
		"id,name,cuisine,price\n"+
			"7,Tacos,Mexican,11.95\n")

	src := NewCSVSource(path, "", testLogger())
	items, err := src.MenuItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, "Mexican", items[0].Category)
}

func TestCSVSourceMenuMissingColumn(t *testing.T) {
	path := writeTempFile(t, "menu.csv",
		"menu_item_id,item_name,price\n"+
			"1,Hamburger,12.95\n")

	src := NewCSVSource(path, "", testLogger())
	_, err := src.MenuItems(context.Background())

	var loadErr *models.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 1, loadErr.Line)
	assert.Contains(t, loadErr.Reason, "category")
}

func TestCSVSourceMenuBadPrice(t *testing.T) {
	path := writeTempFile(t, "menu.csv",
		"menu_item_id,item_name,category,price\n"+
			"1,Hamburger,American,12.95\n"+
			"2,Edamame,Asian,cheap\n")

	src := NewCSVSource(path, "", testLogger())
	_, err := src.MenuItems(context.Background())

	var loadErr *models.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 3, loadErr.Line)
	assert.Contains(t, loadErr.Reason, "cheap")
}

func TestCSVSourceMenuMissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), "", testLogger())
	_, err := src.MenuItems(context.Background())

	var loadErr *models.LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestCSVSourceOrderLines(t *testing.T) {
	path := writeTempFile(t, "orders.csv",
		"order_details_id,order_id,order_date,order_time,item_id\n"+
			"1,100,2023-01-05,11:38:36,109\n"+
			"2,100,2023-01-05,11:38:36,108\n")

	src := NewCSVSource("", path, testLogger())
	lines, err := src.OrderLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, int64(1), lines[0].LineID)
	assert.Equal(t, int64(100), lines[0].OrderID)
	assert.Equal(t, time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC), lines[0].OrderDate)
	assert.Equal(t, 11, lines[0].OrderTime.Hour())
	assert.Equal(t, int64(109), lines[0].ItemID)
}

func TestCSVSourceOrderDateAndTimeLayouts(t *testing.T) {
	// US-style dates and 12-hour clocks appear in older exports.
	path := writeTempFile(t, "orders.csv",
		"order_details_id,order_id,order_date,order_time,item_id\n"+
			"1,100,1/5/2023,11:38:36 AM,109\n"+
			"2,101,1/5/23,7:05:00 PM,108\n")

	src := NewCSVSource("", path, testLogger())
	lines, err := src.OrderLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC), lines[0].OrderDate)
	assert.Equal(t, 11, lines[0].OrderTime.Hour())
	assert.Equal(t, 19, lines[1].OrderTime.Hour())
}

func TestCSVSourceOrderBadDate(t *testing.T) {
	path := writeTempFile(t, "orders.csv",
		"order_details_id,order_id,order_date,order_time,item_id\n"+
			"1,100,someday,11:38:36,109\n")

	src := NewCSVSource("", path, testLogger())
	_, err := src.OrderLines(context.Background())

	var loadErr *models.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 2, loadErr.Line)
	assert.Contains(t, loadErr.Reason, "someday")
}

func TestCSVSourceOrderMalformedRow(t *testing.T) {
	path := writeTempFile(t, "orders.csv",
		"order_details_id,order_id,order_date,order_time,item_id\n"+
			"1,100,2023-01-05,11:38:36\n")

	src := NewCSVSource("", path, testLogger())
	_, err := src.OrderLines(context.Background())

	var loadErr *models.LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestCSVSourceContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewCSVSource("irrelevant.csv", "irrelevant.csv", testLogger())
	_, err := src.MenuItems(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = src.OrderLines(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

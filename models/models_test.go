package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMenuItemValidate(t *testing.T) {
	valid := MenuItem{ID: 1, Name: "Hamburger", Category: "American", Price: decimal.RequireFromString("12.95")}
	assert.NoError(t, valid.Validate())

	free := valid
	free.Price = decimal.Zero
	assert.NoError(t, free.Validate(), "zero price is allowed")

	cases := []struct {
		name   string
		mutate func(*MenuItem)
	}{
		{"zero id", func(m *MenuItem) { m.ID = 0 }},
		{"negative id", func(m *MenuItem) { m.ID = -3 }},
		{"empty name", func(m *MenuItem) { m.Name = "  " }},
		{"empty category", func(m *MenuItem) { m.Category = "" }},
		{"negative price", func(m *MenuItem) { m.Price = decimal.RequireFromString("-0.01") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := valid
			tc.mutate(&item)
			assert.Error(t, item.Validate())
		})
	}
}

func TestOrderLineValidate(t *testing.T) {
	valid := OrderLine{
		LineID:    1,
		OrderID:   100,
		OrderDate: time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC),
		OrderTime: time.Date(0, time.January, 1, 11, 30, 0, 0, time.UTC),
		ItemID:    7,
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*OrderLine)
	}{
		{"zero line id", func(l *OrderLine) { l.LineID = 0 }},
		{"zero order id", func(l *OrderLine) { l.OrderID = 0 }},
		{"missing date", func(l *OrderLine) { l.OrderDate = time.Time{} }},
		{"zero item id", func(l *OrderLine) { l.ItemID = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := valid
			tc.mutate(&line)
			assert.Error(t, line.Validate())
		})
	}
}

func TestLoadErrorMessage(t *testing.T) {
	withLine := &LoadError{Source: "menu_items.csv", Line: 7, Reason: "invalid price"}
	assert.Equal(t, "load menu_items.csv: line 7: invalid price", withLine.Error())

	withoutLine := &LoadError{Source: "menu_items", Reason: "duplicate menu item id 3"}
	assert.Equal(t, "load menu_items: duplicate menu item id 3", withoutLine.Error())

	cause := errors.New("strconv error")
	wrapped := &LoadError{Source: "x", Reason: "bad", Err: cause}
	assert.ErrorIs(t, wrapped, cause)
}

func TestReferentialIntegrityErrorMessage(t *testing.T) {
	single := &ReferentialIntegrityError{Violations: []ReferenceViolation{
		{LineID: 4, OrderID: 100, ItemID: 42},
	}}
	assert.Equal(t, "order line 4 (order 100) references unknown menu item 42", single.Error())

	several := &ReferentialIntegrityError{Violations: []ReferenceViolation{
		{LineID: 4, OrderID: 100, ItemID: 42},
		{LineID: 9, OrderID: 101, ItemID: 43},
	}}
	assert.Equal(t, "2 order lines reference unknown menu items", several.Error())
}

func TestEmptyDatasetErrorMessage(t *testing.T) {
	err := &EmptyDatasetError{Op: "date range"}
	assert.Equal(t, "date range: dataset is empty", err.Error())
}

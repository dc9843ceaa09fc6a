package repositories

import (
	"context"

	"github.com/ayushi-gajendra/restaurant-insights/models"
)

// MenuSource supplies raw menu rows for loading. Implementations
// report parse-level failures as *models.LoadError.
type MenuSource interface {
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
}

// OrderSource supplies raw order line rows for loading.
type OrderSource interface {
	OrderLines(ctx context.Context) ([]models.OrderLine, error)
}

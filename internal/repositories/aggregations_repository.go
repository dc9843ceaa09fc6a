package repositories

import (
	"github.com/ayushi-gajendra/restaurant-insights/models"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

type AggregationRepositoryInterface interface {
	GetAggregationData() (lines []models.OrderLine, menuItems []models.MenuItem, err error)
}

// AggregationRepository hands the report layer a consistent snapshot
// of both loaded tables.
type AggregationRepository struct {
	orderRepo OrderRepositoryInterface
	menuRepo  MenuRepositoryInterface
	logger    *logger.Logger
}

func NewAggregationRepository(orderRepo OrderRepositoryInterface, menuRepo MenuRepositoryInterface, log *logger.Logger) *AggregationRepository {
	return &AggregationRepository{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		logger:    log.WithComponent("aggregation_repository"),
	}
}

func (r *AggregationRepository) GetAggregationData() (lines []models.OrderLine, menuItems []models.MenuItem, err error) {
	r.logger.Debug("Fetching data for aggregation reports")

	if !r.orderRepo.Loaded() || !r.menuRepo.Loaded() {
		r.logger.Error("Aggregation requested before tables were loaded")
		return nil, nil, models.ErrNotLoaded
	}

	return r.orderRepo.All(), r.menuRepo.All(), nil
}

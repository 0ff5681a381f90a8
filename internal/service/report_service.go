package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

// lowStockThreshold marks products that need reordering soon.
const lowStockThreshold = 5

// ReportService assembles read-only aggregates for dashboards.
type ReportService interface {
	InventoryReport(ctx context.Context, orgID uint) (dto.InventoryReportResponse, error)
	OrderReport(ctx context.Context, orgID uint) (dto.OrderReportResponse, error)
}

type reportService struct {
	repo   repository.ReportRepository
	logger zerolog.Logger
}

// NewReportService constructs the reporting service.
func NewReportService(repo repository.ReportRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) InventoryReport(ctx context.Context, orgID uint) (dto.InventoryReportResponse, error) {
	summary, err := s.repo.StockSummary(ctx, orgID, lowStockThreshold)
	if err != nil {
		s.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to aggregate stock summary")
		return dto.InventoryReportResponse{}, err
	}

	return dto.InventoryReportResponse{
		ProductCount:      summary.ProductCount,
		TotalQuantity:     summary.TotalQuantity,
		LowStockCount:     summary.LowStockCount,
		LowStockThreshold: lowStockThreshold,
	}, nil
}

func (s *reportService) OrderReport(ctx context.Context, orgID uint) (dto.OrderReportResponse, error) {
	counts, err := s.repo.OrderStatusCounts(ctx, orgID)
	if err != nil {
		s.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to aggregate order statuses")
		return dto.OrderReportResponse{}, err
	}

	report := dto.OrderReportResponse{Statuses: counts}
	for _, row := range counts {
		report.TotalOrders += row.Count
		report.TotalRevenueCents += row.RevenueCents
	}

	return report, nil
}

package service

import (
	"bytes"
	"context"
	"time"

	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/aiclient"
	"github.com/marketpos/marketpos-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// ReportService provides dashboard statistics, sales exports and the
// AI-backed forecasting and anomaly endpoints
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	ai            aiclient.Client
}

// NewReportService creates a new report service
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	ai aiclient.Client,
) *ReportService {
	return &ReportService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		ai:            ai,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TodayRevenue    float64                       `json:"today_revenue"`
	TodayOrders     int                           `json:"today_orders"`
	MonthRevenue    float64                       `json:"month_revenue"`
	MonthOrders     int                           `json:"month_orders"`
	MonthTax        float64                       `json:"month_tax"`
	LowStockCount   int                           `json:"low_stock_count"`
	DailySales      []repository.DailySalesResult `json:"daily_sales"`
	TopProducts     []repository.TopProductResult `json:"top_products"`
}

// GetDashboardStats returns dashboard statistics for today and the current
// month
func (s *ReportService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := s.analyticsRepo.GetSalesSummary(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}

	month, err := s.analyticsRepo.GetSalesSummary(ctx, startOfMonth, now)
	if err != nil {
		return nil, err
	}

	dailySales, err := s.analyticsRepo.GetDailySales(ctx, 30)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, 10)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodayRevenue:  today.Revenue,
		TodayOrders:   today.OrderCount,
		MonthRevenue:  month.Revenue,
		MonthOrders:   month.OrderCount,
		MonthTax:      month.TaxCollected,
		LowStockCount: len(lowStock),
		DailySales:    dailySales,
		TopProducts:   topProducts,
	}, nil
}

// ForecastCashflow proxies a cashflow forecast request to the AI service
func (s *ReportService) ForecastCashflow(ctx context.Context, days int) (*aiclient.CashflowForecast, error) {
	if days < 1 || days > 90 {
		return nil, apperror.NewBadRequestError("Forecast horizon must be between 1 and 90 days")
	}

	forecast, err := s.ai.ForecastCashflow(ctx, days)
	if err != nil {
		return nil, apperror.NewBadGatewayError("Cashflow forecast failed: " + err.Error())
	}
	return forecast, nil
}

// DetectAnomalies proxies an anomaly detection request to the AI service
func (s *ReportService) DetectAnomalies(ctx context.Context, since time.Time) ([]aiclient.Anomaly, error) {
	anomalies, err := s.ai.DetectAnomalies(ctx, since)
	if err != nil {
		return nil, apperror.NewBadGatewayError("Anomaly detection failed: " + err.Error())
	}
	return anomalies, nil
}

// ExportSalesExcel writes the daily sales of a period to an xlsx workbook
func (s *ReportService) ExportSalesExcel(ctx context.Context, days int) (*bytes.Buffer, error) {
	if days < 1 || days > 365 {
		return nil, apperror.NewBadRequestError("Export period must be between 1 and 365 days")
	}

	dailySales, err := s.analyticsRepo.GetDailySales(ctx, days)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Daily Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Revenue", "Orders"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, day := range dailySales {
		values := []any{
			day.Date.Format("2006-01-02"),
			day.Revenue,
			day.OrderCount,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

package repositories

import (
	"context"

	"github.com/anonto42/recipebook/backend/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines the interface for account and post reports
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReportByID(ctx context.Context, id uint) (*models.Report, error)
	ListReports(ctx context.Context, reportType, status string) ([]models.Report, error)
	FinishReportsForUser(ctx context.Context, userID uint) (int64, error)
	FinishReportsForRecipe(ctx context.Context, recipeID string) (int64, error)
}

type PostgresReportRepository struct {
	db *gorm.DB
}

func NewPostgresReportRepository(db *gorm.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

func (r *PostgresReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	if report.Status == "" {
		report.Status = models.ReportPending
	}
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *PostgresReportRepository) GetReportByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

// ListReports filters by type and status; empty values match everything
func (r *PostgresReportRepository) ListReports(ctx context.Context, reportType, status string) ([]models.Report, error) {
	var reports []models.Report
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if reportType != "" {
		q = q.Where("type = ?", reportType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&reports).Error
	return reports, err
}

func (r *PostgresReportRepository) FinishReportsForUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("type = ? AND reported_user_id = ? AND status = ?", models.ReportAccount, userID, models.ReportPending).
		Update("status", models.ReportFinished)
	return res.RowsAffected, res.Error
}

func (r *PostgresReportRepository) FinishReportsForRecipe(ctx context.Context, recipeID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("type = ? AND reported_recipe_id = ? AND status = ?", models.ReportPost, recipeID, models.ReportPending).
		Update("status", models.ReportFinished)
	return res.RowsAffected, res.Error
}

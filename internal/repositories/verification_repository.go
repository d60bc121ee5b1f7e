package repositories

import (
	"context"

	"github.com/anonto42/recipebook/backend/internal/models"
	"gorm.io/gorm"
)

// VerificationRepository defines the interface for verification requests
type VerificationRepository interface {
	CreateRequest(ctx context.Context, req *models.VerificationRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.VerificationRequest, error)
	ListRequests(ctx context.Context, status string) ([]models.VerificationRequest, error)
	SetStatus(ctx context.Context, id uint, status string) error
}

type PostgresVerificationRepository struct {
	db *gorm.DB
}

func NewPostgresVerificationRepository(db *gorm.DB) *PostgresVerificationRepository {
	return &PostgresVerificationRepository{db: db}
}

func (r *PostgresVerificationRepository) CreateRequest(ctx context.Context, req *models.VerificationRequest) error {
	if req.Status == "" {
		req.Status = models.VerificationPending
	}
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *PostgresVerificationRepository) GetRequestByID(ctx context.Context, id uint) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *PostgresVerificationRepository) ListRequests(ctx context.Context, status string) ([]models.VerificationRequest, error) {
	var reqs []models.VerificationRequest
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&reqs).Error
	return reqs, err
}

func (r *PostgresVerificationRepository) SetStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.VerificationRequest{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

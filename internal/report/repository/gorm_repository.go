package repository

import (
	"emailsmart-backend/internal/report/domain"

	"gorm.io/gorm"
)

// gormReportRepository implements ReportRepository using GORM
type gormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GORM-based ReportRepository
func NewGormReportRepository(db *gorm.DB) ReportRepository {
	return &gormReportRepository{db: db}
}

func (r *gormReportRepository) Create(report *domain.Report) error {
	return r.db.Create(report).Error
}

func (r *gormReportRepository) FindByID(id string) (*domain.Report, error) {
	var report domain.Report
	err := r.db.Where("id = ?", id).First(&report).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *gormReportRepository) FindAll(limit, offset int) ([]*domain.Report, int64, error) {
	var reports []*domain.Report
	var total int64

	query := r.db.Model(&domain.Report{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&reports).Error

	return reports, total, err
}

func (r *gormReportRepository) Replace(report *domain.Report) error {
	return r.db.Save(report).Error
}

func (r *gormReportRepository) Delete(id string) error {
	return r.db.Delete(&domain.Report{}, "id = ?", id).Error
}

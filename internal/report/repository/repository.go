package repository

import "emailsmart-backend/internal/report/domain"

// ReportRepository defines the interface for report persistence. A report is
// always written as a whole unit: created once, replaced on every mutation,
// deleted as a whole. There is no partial update.
type ReportRepository interface {
	// Create persists a freshly extracted report
	Create(report *domain.Report) error

	// FindByID finds a report by its ID; returns nil, nil when absent
	FindByID(id string) (*domain.Report, error)

	// FindAll returns reports newest first, with the total count
	FindAll(limit, offset int) ([]*domain.Report, int64, error)

	// Replace overwrites the stored report with the given value, keyed by ID
	Replace(report *domain.Report) error

	// Delete deletes a report by ID
	Delete(id string) error
}

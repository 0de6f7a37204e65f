package srs

import (
	"errors"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// ErrNilRecord is returned when a nil record is passed to the service.
var ErrNilRecord = errors.New("record cannot be nil")

// Service defines the interface for retention scoring operations
type Service interface {
	// Score computes the retention score of a record at time now.
	// The record is not modified.
	Score(record *domain.Record, now domain.Days) (float64, error)

	// Grade returns an updated copy of record after it was answered at time now.
	Grade(record *domain.Record, wasCorrect bool, now domain.Days) (*domain.Record, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct{}

// NewDefaultService creates a new retention scoring service
func NewDefaultService() Service {
	return &defaultService{}
}

// Score implements the Service interface
func (s *defaultService) Score(record *domain.Record, now domain.Days) (float64, error) {
	if record == nil {
		return 0, ErrNilRecord
	}

	return computeScore(record, now)
}

// Grade implements the Service interface
func (s *defaultService) Grade(
	record *domain.Record,
	wasCorrect bool,
	now domain.Days,
) (*domain.Record, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return applyGrade(record, wasCorrect, now), nil
}

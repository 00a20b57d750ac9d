package apr

import (
	"log/slog"

	errors "github.com/dcampelo/permit-management/internal"
)

// RepositoryAPI defines the data access methods for APR checklists.
type RepositoryAPI interface {
	Create(a *AprChecklist) error
	GetByPermitID(permitID int64) ([]*AprChecklist, error)
}

// PermitDirectory is the slice of the permit registry the APR registry
// needs: existence of the permit at attach time.
type PermitDirectory interface {
	Exists(id int64) (bool, error)
}

// Service attaches risk-assessment checklists to existing permits.
type Service struct {
	repo    RepositoryAPI
	permits PermitDirectory
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, permits PermitDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		permits: permits,
		logger:  logger,
	}
}

// Attach validates the payload, checks that the permit exists and persists
// the checklist. Same check-then-insert race as permit issuance.
func (s *Service) Attach(dto AttachChecklistDTO) (*AprChecklist, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("checklist validation failed", "error", err)
		return nil, err
	}

	exists, err := s.permits.Exists(dto.PermitID)
	if err != nil {
		s.logger.Error("permit lookup failed", "error", err, "permit_id", dto.PermitID)
		return nil, errors.NewInternalError("failed to check permit", err)
	}
	if !exists {
		s.logger.Warn("checklist rejected: permit does not exist", "permit_id", dto.PermitID)
		return nil, errors.ErrPermitNotFound
	}

	date, err := dto.ParsedDate()
	if err != nil {
		return nil, errors.NewValidationFieldError("date", "date must be in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
	}

	a := &AprChecklist{
		PermitID:  dto.PermitID,
		Checklist: dto.Checklist,
		AprDate:   date,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create checklist", "error", err, "permit_id", dto.PermitID)
		return nil, errors.NewInternalError("failed to create checklist", err)
	}

	s.logger.Info("checklist attached", "apr_id", a.ID, "permit_id", a.PermitID)

	return a, nil
}

// ListByPermit returns the checklists attached to one permit.
func (s *Service) ListByPermit(permitID int64) ([]*AprChecklist, error) {
	exists, err := s.permits.Exists(permitID)
	if err != nil {
		s.logger.Error("permit lookup failed", "error", err, "permit_id", permitID)
		return nil, errors.NewInternalError("failed to check permit", err)
	}
	if !exists {
		return nil, errors.ErrPermitNotFound
	}

	checklists, err := s.repo.GetByPermitID(permitID)
	if err != nil {
		s.logger.Error("failed to list checklists", "error", err, "permit_id", permitID)
		return nil, errors.NewInternalError("failed to list checklists", err)
	}
	return checklists, nil
}

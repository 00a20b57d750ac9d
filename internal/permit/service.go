package permit

import (
	"log/slog"

	errors "github.com/dcampelo/permit-management/internal"
)

// RepositoryAPI defines the data access methods for work permits.
type RepositoryAPI interface {
	Create(p *WorkPermit) error
	GetByID(id int64) (*WorkPermit, error)
	GetAll() ([]*WorkPermit, error)
	GetAllWithResponsible() ([]*PermitWithResponsible, error)
	Exists(id int64) (bool, error)
}

// UserDirectory is the slice of the credential store the registry needs:
// existence of the responsible user at issue time.
type UserDirectory interface {
	Exists(id int64) (bool, error)
}

// Service handles permit issuance and listings.
type Service struct {
	repo   RepositoryAPI
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// Issue validates the payload, checks that the responsible user exists and
// persists the permit. The existence check and the insert are separate
// statements: a concurrent deletion of the user between them is a known
// race this registry does not prevent.
func (s *Service) Issue(dto IssuePermitDTO) (*WorkPermit, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("permit validation failed", "error", err)
		return nil, err
	}

	exists, err := s.users.Exists(dto.ResponsibleUserID)
	if err != nil {
		s.logger.Error("responsible user lookup failed", "error", err, "responsible_user_id", dto.ResponsibleUserID)
		return nil, errors.NewInternalError("failed to check responsible user", err)
	}
	if !exists {
		s.logger.Warn("permit issue rejected: responsible user does not exist", "responsible_user_id", dto.ResponsibleUserID)
		return nil, errors.ErrResponsibleUnknown
	}

	date, err := dto.ParsedDate()
	if err != nil {
		return nil, errors.NewValidationFieldError("date", "date must be in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
	}

	p := &WorkPermit{
		Worker:            dto.Worker,
		Sector:            dto.Sector,
		Activity:          dto.Activity,
		Location:          dto.Location,
		PermitDate:        date,
		Status:            dto.Status,
		ResponsibleUserID: dto.ResponsibleUserID,
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create permit", "error", err, "responsible_user_id", dto.ResponsibleUserID)
		return nil, errors.NewInternalError("failed to create permit", err)
	}

	s.logger.Info("permit issued",
		"permit_id", p.ID,
		"sector", p.Sector,
		"responsible_user_id", p.ResponsibleUserID)

	return p, nil
}

// List returns raw permit records, no join.
func (s *Service) List() ([]*WorkPermit, error) {
	permits, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list permits", "error", err)
		return nil, errors.NewInternalError("failed to list permits", err)
	}
	return permits, nil
}

// ListWithResponsible returns the joined read-side listing. A permit whose
// responsible user has been deleted is excluded.
func (s *Service) ListWithResponsible() ([]*PermitWithResponsible, error) {
	rows, err := s.repo.GetAllWithResponsible()
	if err != nil {
		s.logger.Error("failed to list permits with responsible", "error", err)
		return nil, errors.NewInternalError("failed to list permits", err)
	}
	return rows, nil
}

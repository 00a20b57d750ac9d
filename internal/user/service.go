package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	errors "github.com/dcampelo/permit-management/internal"
)

// RepositoryAPI defines the data access methods for users. Implementations
// report a duplicate email as errors.ErrEmailTaken and an unknown id as
// errors.ErrUserNotFound.
type RepositoryAPI interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) error
	Delete(id int64) error
	GetAll() ([]*User, error)
}

// Service owns account records and the password hashing discipline: the
// plaintext never leaves Register/Update, only the bcrypt hash is stored.
type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account. The returned user carries no hash.
func (s *Service) Register(dto RegisterUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("user registration validation failed", "error", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         dto.Role,
	}

	if err := s.repo.Create(u); err != nil {
		if _, ok := errors.IsAppError(err); ok {
			s.logger.Warn("user registration rejected", "error", err, "email", dto.Email)
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, errors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)

	return u.Public(), nil
}

// Update applies a coalescing patch: nil fields keep their prior values.
// The password is re-hashed only when a new one is supplied.
func (s *Service) Update(id int64, dto UpdateUserDTO) error {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("user update validation failed", "error", err, "user_id", id)
		return err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to load user for update", "error", err, "user_id", id)
		return errors.NewInternalError("failed to load user", err)
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("password hashing failed", "error", err, "user_id", id)
			return errors.NewInternalError("failed to hash password", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(u); err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return errors.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return nil
}

// Delete permanently removes the account. Permits that reference it are left
// in place; the joined permit listing hides them from that point on.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to load user for delete", "error", err, "user_id", id)
		return errors.NewInternalError("failed to load user", err)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return errors.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, errors.NewInternalError("failed to get user", err)
	}
	return u.Public(), nil
}

func (s *Service) List() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}

	public := make([]*User, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	return public, nil
}

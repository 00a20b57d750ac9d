package postgres

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/dcampelo/permit-management/internal"
	userDatamodel "github.com/dcampelo/permit-management/internal/core/datamodel/user"
	"github.com/dcampelo/permit-management/internal/user"
)

// UserRepository implements user.RepositoryAPI using GORM. The unique-email
// invariant is enforced by the database constraint; a violation surfaces as
// apperrors.ErrEmailTaken. Requires gorm.Config{TranslateError: true}.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	record := user.ToDataModel(u)
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return err
	}
	u.ID = record.ID
	u.CreatedAt = record.CreatedAt
	u.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}

func (r *UserRepository) Update(u *user.User) error {
	record := user.ToDataModel(u)
	if err := r.db.Save(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return err
	}
	u.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&userDatamodel.User{}, id).Error
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var records []*userDatamodel.User
	if err := r.db.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(records), nil
}

// Exists reports whether the user id resolves to a stored record. Used by
// the permit registry to check the responsible user before an insert.
func (r *UserRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&userDatamodel.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/dcampelo/permit-management/internal"
	"github.com/dcampelo/permit-management/internal/user"
	userPostgres "github.com/dcampelo/permit-management/internal/user/postgres"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

// SQLiteUser is a SQLite-compatible model for testing
type SQLiteUser struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

var _ = Describe("User PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *userPostgres.UserRepository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{})
		Expect(err).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)
	})

	Describe("Create", func() {
		It("should create a new user and backfill the generated id", func() {
			u := &user.User{
				Name:         "Ana",
				Email:        "ana@x.com",
				PasswordHash: "$2a$10$fakehashfakehashfakehash",
				Role:         "admin",
			}

			err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.CreatedAt).NotTo(BeZero())
		})

		It("should translate a duplicate email into a conflict", func() {
			first := &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
			Expect(repo.Create(first)).To(Succeed())

			second := &user.User{Name: "Impostor", Email: "ana@x.com", PasswordHash: "h2", Role: "operator"}
			err := repo.Create(second)
			Expect(err).To(Equal(apperrors.ErrEmailTaken))
		})
	})

	Describe("GetByID", func() {
		It("should retrieve a stored user", func() {
			created := &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
			Expect(repo.Create(created)).To(Succeed())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Email).To(Equal("ana@x.com"))
			Expect(found.PasswordHash).To(Equal("h1"))
		})

		It("should fail with not found for an unknown id", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(Equal(apperrors.ErrUserNotFound))
		})
	})

	Describe("GetByEmail", func() {
		It("should retrieve a stored user by email", func() {
			created := &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
			Expect(repo.Create(created)).To(Succeed())

			found, err := repo.GetByEmail("ana@x.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(created.ID))
		})

		It("should fail with not found for an unknown email", func() {
			_, err := repo.GetByEmail("nobody@x.com")
			Expect(err).To(Equal(apperrors.ErrUserNotFound))
		})
	})

	Describe("Update", func() {
		var created *user.User

		BeforeEach(func() {
			created = &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
			Expect(repo.Create(created)).To(Succeed())
		})

		It("should persist field changes", func() {
			created.Name = "Ana Maria"
			created.Role = "operator"

			Expect(repo.Update(created)).To(Succeed())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Ana Maria"))
			Expect(found.Role).To(Equal("operator"))
		})

		It("should reject an email change that collides with another user", func() {
			other := &user.User{Name: "Bruno", Email: "bruno@x.com", PasswordHash: "h2", Role: "operator"}
			Expect(repo.Create(other)).To(Succeed())

			other.Email = "ana@x.com"
			err := repo.Update(other)
			Expect(err).To(Equal(apperrors.ErrEmailTaken))
		})
	})

	Describe("Delete", func() {
		It("should permanently remove the row", func() {
			created := &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
			Expect(repo.Create(created)).To(Succeed())

			Expect(repo.Delete(created.ID)).To(Succeed())

			_, err := repo.GetByID(created.ID)
			Expect(err).To(Equal(apperrors.ErrUserNotFound))
		})

		It("should free the email for reuse after deletion", func() {
			created := &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
			Expect(repo.Create(created)).To(Succeed())
			Expect(repo.Delete(created.ID)).To(Succeed())

			recreated := &user.User{Name: "Ana Again", Email: "ana@x.com", PasswordHash: "h2", Role: "admin"}
			Expect(repo.Create(recreated)).To(Succeed())
		})
	})

	Describe("GetAll", func() {
		It("should return users ordered by id", func() {
			Expect(repo.Create(&user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"})).To(Succeed())
			Expect(repo.Create(&user.User{Name: "Bruno", Email: "bruno@x.com", PasswordHash: "h2", Role: "operator"})).To(Succeed())

			users, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[0].Name).To(Equal("Ana"))
			Expect(users[1].Name).To(Equal("Bruno"))
		})
	})

	Describe("Exists", func() {
		It("should report stored and missing ids", func() {
			created := &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
			Expect(repo.Create(created)).To(Succeed())

			exists, err := repo.Exists(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.Exists(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})

package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dcampelo/permit-management/internal/permit"
	permitPostgres "github.com/dcampelo/permit-management/internal/permit/postgres"
	"github.com/dcampelo/permit-management/internal/user"
	userPostgres "github.com/dcampelo/permit-management/internal/user/postgres"
)

func TestPermitPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permit Postgres Suite")
}

// SQLite-compatible models for testing
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

type SQLiteWorkPermit struct {
	ID                int64     `gorm:"primaryKey"`
	Worker            string    `gorm:"column:worker;not null"`
	Sector            string    `gorm:"column:sector;not null"`
	Activity          string    `gorm:"column:activity;not null"`
	Location          string    `gorm:"column:location;not null"`
	PermitDate        time.Time `gorm:"column:permit_date"`
	Status            string    `gorm:"column:status;not null"`
	ResponsibleUserID int64     `gorm:"column:responsible_user_id"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (SQLiteWorkPermit) TableName() string {
	return "work_permits"
}

var _ = Describe("Permit PostgreSQL Repository", func() {
	var (
		db       *gorm.DB
		repo     *permitPostgres.PermitRepository
		userRepo *userPostgres.UserRepository
		ana      *user.User
	)

	permitDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	newPermit := func(responsibleID int64) *permit.WorkPermit {
		return &permit.WorkPermit{
			Worker:            "João",
			Sector:            "Manutenção",
			Activity:          "Solda em altura",
			Location:          "Galpão 3",
			PermitDate:        permitDate,
			Status:            "aberta",
			ResponsibleUserID: responsibleID,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteWorkPermit{})
		Expect(err).NotTo(HaveOccurred())

		repo = permitPostgres.NewPermitRepository(db)
		userRepo = userPostgres.NewUserRepository(db)

		ana = &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
		Expect(userRepo.Create(ana)).To(Succeed())
	})

	Describe("Create", func() {
		It("should create a permit and backfill the generated id", func() {
			p := newPermit(ana.ID)

			err := repo.Create(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(BeNumerically(">", 0))
			Expect(p.CreatedAt).NotTo(BeZero())
		})
	})

	Describe("GetAll", func() {
		It("should return permits ordered by id", func() {
			first := newPermit(ana.ID)
			Expect(repo.Create(first)).To(Succeed())

			second := newPermit(ana.ID)
			second.Worker = "Maria"
			Expect(repo.Create(second)).To(Succeed())

			permits, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(permits).To(HaveLen(2))
			Expect(permits[0].Worker).To(Equal("João"))
			Expect(permits[1].Worker).To(Equal("Maria"))
		})
	})

	Describe("GetAllWithResponsible", func() {
		It("should enrich each permit with the responsible user's name", func() {
			p := newPermit(ana.ID)
			Expect(repo.Create(p)).To(Succeed())

			rows, err := repo.GetAllWithResponsible()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ID).To(Equal(p.ID))
			Expect(rows[0].Worker).To(Equal("João"))
			Expect(rows[0].ResponsibleName).To(Equal("Ana"))
			Expect(rows[0].Status).To(Equal("aberta"))
		})

		It("should exclude permits whose responsible user was deleted", func() {
			bruno := &user.User{Name: "Bruno", Email: "bruno@x.com", PasswordHash: "h2", Role: "operator"}
			Expect(userRepo.Create(bruno)).To(Succeed())

			kept := newPermit(ana.ID)
			Expect(repo.Create(kept)).To(Succeed())

			orphaned := newPermit(bruno.ID)
			orphaned.Worker = "Maria"
			Expect(repo.Create(orphaned)).To(Succeed())

			Expect(userRepo.Delete(bruno.ID)).To(Succeed())

			rows, err := repo.GetAllWithResponsible()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ResponsibleName).To(Equal("Ana"))

			// The raw listing still carries the orphaned permit.
			permits, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(permits).To(HaveLen(2))
		})

		It("should return an empty set when no permits exist", func() {
			rows, err := repo.GetAllWithResponsible()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("Exists", func() {
		It("should report stored and missing ids", func() {
			p := newPermit(ana.ID)
			Expect(repo.Create(p)).To(Succeed())

			exists, err := repo.Exists(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.Exists(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})

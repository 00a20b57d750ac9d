package postgres_test

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dcampelo/permit-management/internal/apr"
	aprPostgres "github.com/dcampelo/permit-management/internal/apr/postgres"
)

func TestAprPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Apr Postgres Suite")
}

// SQLiteAprChecklist is a SQLite-compatible model for testing
type SQLiteAprChecklist struct {
	ID        int64     `gorm:"primaryKey"`
	PermitID  int64     `gorm:"column:permit_id;not null"`
	Checklist string    `gorm:"column:checklist;not null"`
	AprDate   time.Time `gorm:"column:apr_date"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteAprChecklist) TableName() string {
	return "apr_checklists"
}

var _ = Describe("Apr PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo apr.RepositoryAPI
	)

	aprDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAprChecklist{})
		Expect(err).NotTo(HaveOccurred())

		repo = aprPostgres.NewAprRepository(db)
	})

	Describe("Create", func() {
		It("should store a checklist and backfill the generated id", func() {
			a := &apr.AprChecklist{
				PermitID:  1,
				Checklist: json.RawMessage(`{"epi_ok":"sim"}`),
				AprDate:   aprDate,
			}

			err := repo.Create(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).To(BeNumerically(">", 0))
			Expect(a.CreatedAt).NotTo(BeZero())
		})

		It("should keep the checklist body byte-for-byte", func() {
			body := `{"epi_ok":"sim","area_isolada":"não","observacao":"vento forte"}`
			a := &apr.AprChecklist{
				PermitID:  1,
				Checklist: json.RawMessage(body),
				AprDate:   aprDate,
			}
			Expect(repo.Create(a)).To(Succeed())

			stored, err := repo.GetByPermitID(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(1))
			Expect(string(stored[0].Checklist)).To(Equal(body))
		})
	})

	Describe("GetByPermitID", func() {
		It("should return only the checklists of the requested permit, oldest first", func() {
			for i, body := range []string{`{"q":"a"}`, `{"q":"b"}`} {
				a := &apr.AprChecklist{
					PermitID:  1,
					Checklist: json.RawMessage(body),
					AprDate:   aprDate.AddDate(0, 0, i),
				}
				Expect(repo.Create(a)).To(Succeed())
			}
			other := &apr.AprChecklist{
				PermitID:  2,
				Checklist: json.RawMessage(`{"q":"c"}`),
				AprDate:   aprDate,
			}
			Expect(repo.Create(other)).To(Succeed())

			checklists, err := repo.GetByPermitID(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(checklists).To(HaveLen(2))
			Expect(string(checklists[0].Checklist)).To(Equal(`{"q":"a"}`))
			Expect(string(checklists[1].Checklist)).To(Equal(`{"q":"b"}`))
		})

		It("should return an empty set for a permit with no checklists", func() {
			checklists, err := repo.GetByPermitID(42)
			Expect(err).NotTo(HaveOccurred())
			Expect(checklists).To(BeEmpty())
		})
	})
})

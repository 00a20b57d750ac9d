package permit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"log/slog"

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

// SQLite-compatible models for testing
type sqliteUser struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (sqliteUser) TableName() string {
	return "users"
}

type sqliteWorkPermit struct {
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

func (sqliteWorkPermit) TableName() string {
	return "work_permits"
}

var _ = Describe("Permit Handler Integration", func() {
	var (
		db       *gorm.DB
		handler  *permit.Handler
		userRepo *userPostgres.UserRepository
		ana      *user.User
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteUser{}, &sqliteWorkPermit{})
		Expect(err).NotTo(HaveOccurred())

		userRepo = userPostgres.NewUserRepository(db)
		repo := permitPostgres.NewPermitRepository(db)
		service := permit.NewService(repo, userRepo, slogger)
		handler = permit.NewHandler(service)

		ana = &user.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h1", Role: "admin"}
		Expect(userRepo.Create(ana)).To(Succeed())
	})

	Describe("POST /permits", func() {
		It("should issue a permit and answer 201 with the stored record", func() {
			body := `{
				"worker": "João",
				"sector": "Manutenção",
				"activity": "Solda em altura",
				"date": "2024-05-01",
				"status": "aberta",
				"location": "Galpão 3",
				"responsible_user_id": 1
			}`
			req := httptest.NewRequest(http.MethodPost, "/permits", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.IssuePermit(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var created permit.WorkPermit
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Worker).To(Equal("João"))
		})

		It("should answer 400 for a payload with missing fields", func() {
			req := httptest.NewRequest(http.MethodPost, "/permits", strings.NewReader(`{"worker":"João"}`))
			w := httptest.NewRecorder()

			handler.IssuePermit(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 404 when the responsible user does not exist", func() {
			body := `{
				"worker": "João",
				"sector": "Manutenção",
				"activity": "Solda em altura",
				"date": "2024-05-01",
				"status": "aberta",
				"location": "Galpão 3",
				"responsible_user_id": 99
			}`
			req := httptest.NewRequest(http.MethodPost, "/permits", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.IssuePermit(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should answer 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/permits", strings.NewReader(`{`))
			w := httptest.NewRecorder()

			handler.IssuePermit(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /permits", func() {
		It("should serve the joined listing with the responsible name", func() {
			issue := `{
				"worker": "João",
				"sector": "Manutenção",
				"activity": "Solda em altura",
				"date": "2024-05-01",
				"status": "aberta",
				"location": "Galpão 3",
				"responsible_user_id": 1
			}`
			req := httptest.NewRequest(http.MethodPost, "/permits", strings.NewReader(issue))
			handler.IssuePermit(httptest.NewRecorder(), req)

			w := httptest.NewRecorder()
			handler.ListPermits(w, httptest.NewRequest(http.MethodGet, "/permits", nil))

			Expect(w.Code).To(Equal(http.StatusOK))

			var rows []permit.PermitWithResponsible
			Expect(json.NewDecoder(w.Body).Decode(&rows)).To(Succeed())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ResponsibleName).To(Equal("Ana"))
		})

		It("should serve an empty JSON array when nothing is stored", func() {
			w := httptest.NewRecorder()
			handler.ListPermits(w, httptest.NewRequest(http.MethodGet, "/permits", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(w.Body.String())).To(Equal("[]"))
		})

		It("should keep an orphaned permit out of the joined listing but in the raw one", func() {
			issue := `{
				"worker": "João",
				"sector": "Manutenção",
				"activity": "Solda em altura",
				"date": "2024-05-01",
				"status": "aberta",
				"location": "Galpão 3",
				"responsible_user_id": 1
			}`
			req := httptest.NewRequest(http.MethodPost, "/permits", strings.NewReader(issue))
			handler.IssuePermit(httptest.NewRecorder(), req)

			Expect(userRepo.Delete(ana.ID)).To(Succeed())

			joined := httptest.NewRecorder()
			handler.ListPermits(joined, httptest.NewRequest(http.MethodGet, "/permits", nil))
			Expect(joined.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(joined.Body.String())).To(Equal("[]"))

			raw := httptest.NewRecorder()
			handler.ListPermitsRaw(raw, httptest.NewRequest(http.MethodGet, "/permits/raw", nil))
			Expect(raw.Code).To(Equal(http.StatusOK))

			var permits []permit.WorkPermit
			Expect(json.NewDecoder(raw.Body).Decode(&permits)).To(Succeed())
			Expect(permits).To(HaveLen(1))
		})
	})
})

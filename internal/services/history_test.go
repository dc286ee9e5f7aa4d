package services_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/pipeforge/prql-translator/internal/models"
	"github.com/pipeforge/prql-translator/internal/services"
	"github.com/pipeforge/prql-translator/internal/store"
	"github.com/pipeforge/prql-translator/internal/store/migrations"
	srvErrors "github.com/pipeforge/prql-translator/pkg/errors"
	"github.com/pipeforge/prql-translator/pkg/filter"
)

var _ = Describe("HistoryService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		st  *store.Store
		srv *services.HistoryService
	)

	record := func(dialect string, createdAt time.Time) models.Translation {
		t := models.Translation{
			ID:        uuid.New(),
			Dialect:   dialect,
			Pipeline:  json.RawMessage(`[{"name":"domain","domain":"orders"}]`),
			Prql:      "from `orders`",
			Status:    models.TranslationStatusTranslated,
			CreatedAt: createdAt,
		}
		Expect(srv.Record(ctx, t)).To(Succeed())
		return t
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		st = store.NewStore(db)
		srv = services.NewHistoryService(st)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("Record", func() {
		It("should store a translation retrievable by id", func() {
			t := record("postgres", time.Now().UTC())

			got, err := srv.Get(ctx, t.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(t.ID))
			Expect(got.Prql).To(Equal(t.Prql))
		})
	})

	Describe("Get", func() {
		It("should return a not found error for an unknown id", func() {
			_, err := srv.Get(ctx, uuid.New())
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Describe("List", func() {
		var oldest, middle, newest models.Translation

		BeforeEach(func() {
			base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
			oldest = record("postgres", base)
			middle = record("bigquery", base.Add(time.Minute))
			newest = record("postgres", base.Add(2*time.Minute))
		})

		It("should return newest translations first by default", func() {
			translations, total, err := srv.List(ctx, services.HistoryListParams{})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))
			Expect(translations).To(HaveLen(3))
			Expect(translations[0].ID).To(Equal(newest.ID))
			Expect(translations[2].ID).To(Equal(oldest.ID))
		})

		It("should filter by dialect", func() {
			translations, total, err := srv.List(ctx, services.HistoryListParams{Dialect: "bigquery"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(1))
			Expect(translations).To(HaveLen(1))
			Expect(translations[0].ID).To(Equal(middle.ID))
		})

		It("should filter by status", func() {
			failed := models.Translation{
				ID:        uuid.New(),
				Dialect:   "postgres",
				Prql:      "from `orders`",
				Status:    models.TranslationStatusError,
				CreatedAt: time.Now().UTC(),
			}
			Expect(srv.Record(ctx, failed)).To(Succeed())

			translations, total, err := srv.List(ctx, services.HistoryListParams{Status: "error"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(1))
			Expect(translations).To(HaveLen(1))
			Expect(translations[0].ID).To(Equal(failed.ID))
		})

		It("should apply a parsed filter expression", func() {
			expr, err := filter.Parse([]byte("dialect = 'bigquery' or created > '2025-03-01 10:01:30'"))
			Expect(err).NotTo(HaveOccurred())

			translations, total, err := srv.List(ctx, services.HistoryListParams{Filter: expr})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(2))
			Expect(translations[0].ID).To(Equal(newest.ID))
			Expect(translations[1].ID).To(Equal(middle.ID))
		})

		It("should surface unknown filter columns as query errors", func() {
			expr, err := filter.Parse([]byte("nosuchcolumn = 'x'"))
			Expect(err).NotTo(HaveOccurred())

			_, _, err = srv.List(ctx, services.HistoryListParams{Filter: expr})
			Expect(err).To(HaveOccurred())
		})

		It("should honor explicit sort fields", func() {
			translations, _, err := srv.List(ctx, services.HistoryListParams{
				Sort: []services.SortField{{Field: "created_at", Desc: false}},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(translations[0].ID).To(Equal(oldest.ID))
		})

		It("should paginate and still report the full total", func() {
			translations, total, err := srv.List(ctx, services.HistoryListParams{
				Page:     2,
				PageSize: 2,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))
			Expect(translations).To(HaveLen(1))
			Expect(translations[0].ID).To(Equal(oldest.ID))
		})
	})

	Describe("Clear", func() {
		It("should remove all recorded translations", func() {
			record("postgres", time.Now().UTC())
			record("bigquery", time.Now().UTC())

			Expect(srv.Clear(ctx)).To(Succeed())

			_, total, err := srv.List(ctx, services.HistoryListParams{})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(0))
		})
	})

	Describe("Export", func() {
		It("should produce a workbook with one row per translation", func() {
			t := record("postgres", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

			data, err := srv.Export(ctx, services.HistoryListParams{})
			Expect(err).NotTo(HaveOccurred())
			Expect(data).NotTo(BeEmpty())

			workbook, err := excelize.OpenReader(bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			defer workbook.Close()

			rows, err := workbook.GetRows("Translations")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0]).To(Equal([]string{"ID", "Dialect", "Status", "PRQL", "SQL", "Error", "Duration (ms)", "Created At"}))
			Expect(rows[1][0]).To(Equal(t.ID.String()))
			Expect(rows[1][1]).To(Equal("postgres"))
			Expect(rows[1][2]).To(Equal("translated"))
			Expect(rows[1][3]).To(Equal("from `orders`"))
		})

		It("should export an empty workbook when there is no history", func() {
			data, err := srv.Export(ctx, services.HistoryListParams{})
			Expect(err).NotTo(HaveOccurred())

			workbook, err := excelize.OpenReader(bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			defer workbook.Close()

			rows, err := workbook.GetRows("Translations")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})
})

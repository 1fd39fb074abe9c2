package sqlrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/davicafu/academylab/internal/batch/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/persistence"
	"github.com/davicafu/academylab/shared/platform/query"
)

const batchSelect = `id, name, slug, course_id, start_date, end_date, enrollment_start, enrollment_end,
	max_students, price, discount_price, status, created_at, updated_at`

var batchColumns = persistence.Columns{
	"id":        "id",
	"name":      "name",
	"slug":      "slug",
	"courseId":  "course_id",
	"status":    "status",
	"startDate": "start_date",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type BatchRepo struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.BatchRepository = (*BatchRepo)(nil)

func NewBatchRepo(db *sql.DB, dialect persistence.Dialect) *BatchRepo {
	return &BatchRepo{db: db, dialect: dialect}
}

func (r *BatchRepo) Create(ctx context.Context, b *domain.Batch, evt sharedDomain.OutboxEvent) error {
	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`INSERT INTO batches (`+batchSelect+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`),
			b.ID.String(), b.Name, b.Slug, b.CourseID.String(), b.StartDate, nullTime(b.EndDate),
			b.EnrollmentStart, b.EnrollmentEnd, b.MaxStudents, b.Price, nullFloat(b.DiscountPrice),
			string(b.Status), b.CreatedAt, b.UpdatedAt,
		); err != nil {
			return err
		}
		return persistence.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *BatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Batch, error) {
	return r.getOne(ctx, `SELECT `+batchSelect+` FROM batches WHERE id = ?`, id.String())
}

func (r *BatchRepo) GetBySlug(ctx context.Context, slug string) (*domain.Batch, error) {
	return r.getOne(ctx, `SELECT `+batchSelect+` FROM batches WHERE slug = ?`, slug)
}

func (r *BatchRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return persistence.Exists(ctx, r.db, r.dialect, `SELECT 1 FROM batches WHERE slug = ?`, slug)
}

// Update reescribe los campos mutables; curso y slug no cambian.
func (r *BatchRepo) Update(ctx context.Context, b *domain.Batch, evts ...sharedDomain.OutboxEvent) error {
	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`UPDATE batches SET name=?, start_date=?, end_date=?, enrollment_start=?, enrollment_end=?,
				max_students=?, price=?, discount_price=?, status=?, updated_at=?
			 WHERE id=?`),
			b.Name, b.StartDate, nullTime(b.EndDate), b.EnrollmentStart, b.EnrollmentEnd,
			b.MaxStudents, b.Price, nullFloat(b.DiscountPrice), string(b.Status), b.UpdatedAt,
			b.ID.String(),
		)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		return persistence.InsertOutboxBatchTx(ctx, tx, r.dialect, evts)
	})
}

func (r *BatchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM batches WHERE id = ?`), id.String())
	if err != nil {
		return persistence.TranslateError(err)
	}
	return affected(res)
}

func (r *BatchRepo) List(ctx context.Context, criteria sharedDomain.Criteria, opts query.Options) ([]*domain.Batch, int, error) {
	return persistence.QueryPage(ctx, r.db, r.dialect, "batches", batchSelect, criteria, opts, batchColumns, scanBatch)
}

func (r *BatchRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Batch, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(
		`SELECT `+batchSelect+` FROM batches WHERE course_id = ? ORDER BY start_date ASC, id ASC`), courseID.String())
	if err != nil {
		return nil, persistence.TranslateError(err)
	}
	defer rows.Close()

	batches := []*domain.Batch{}
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, persistence.TranslateError(err)
		}
		batches = append(batches, b)
	}
	return batches, persistence.TranslateError(rows.Err())
}

func (r *BatchRepo) getOne(ctx context.Context, q string, arg interface{}) (*domain.Batch, error) {
	b, err := scanBatch(r.db.QueryRowContext(ctx, r.dialect.Rebind(q), arg))
	if err == sql.ErrNoRows {
		return nil, domain.ErrBatchNotFound
	}
	if err != nil {
		return nil, persistence.TranslateError(err)
	}
	return b, nil
}

func scanBatch(s persistence.RowScanner) (*domain.Batch, error) {
	var (
		b        domain.Batch
		status   string
		end      sql.NullTime
		discount sql.NullFloat64
	)
	if err := s.Scan(&b.ID, &b.Name, &b.Slug, &b.CourseID, &b.StartDate, &end, &b.EnrollmentStart,
		&b.EnrollmentEnd, &b.MaxStudents, &b.Price, &discount, &status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}

	b.Status = domain.Status(status)
	if end.Valid {
		t := end.Time
		b.EndDate = &t
	}
	if discount.Valid {
		b.DiscountPrice = &discount.Float64
	}
	return &b, nil
}

func affected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

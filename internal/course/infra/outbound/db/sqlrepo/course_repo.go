package sqlrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/davicafu/academylab/internal/course/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/persistence"
	"github.com/davicafu/academylab/shared/platform/query"
)

const courseSelect = `id, title, slug, description, type, access, level, status, price, discount_price,
	is_premium, approved, is_deleted, location, thumbnail, meta_title, meta_description, instructor_id,
	category_id, start_date, end_date, enrollment_start, enrollment_end, curriculum, learnings, faqs,
	created_at, updated_at`

var courseColumns = persistence.Columns{
	"id":              "id",
	"title":           "title",
	"slug":            "slug",
	"description":     "description",
	"type":            "type",
	"access":          "access",
	"level":           "level",
	"status":          "status",
	"price":           "price",
	"isPremium":       "is_premium",
	"approved":        "approved",
	"isDeleted":       "is_deleted",
	"location":        "location",
	"metaTitle":       "meta_title",
	"metaDescription": "meta_description",
	"instructorId":    "instructor_id",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
}

// CourseRepo implementa domain.CourseRepository. Currículo, aprendizajes y
// FAQs se guardan como columnas JSON.
type CourseRepo struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.CourseRepository = (*CourseRepo)(nil)

func NewCourseRepo(db *sql.DB, dialect persistence.Dialect) *CourseRepo {
	return &CourseRepo{db: db, dialect: dialect}
}

func (r *CourseRepo) Create(ctx context.Context, c *domain.Course, evt sharedDomain.OutboxEvent) error {
	curriculum, learnings, faqs, err := marshalNested(c)
	if err != nil {
		return err
	}

	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`INSERT INTO courses (`+courseSelect+`)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`),
			c.ID.String(), c.Title, c.Slug, c.Description, string(c.Type), string(c.Access), string(c.Level),
			string(c.Status), c.Price, nullFloat(c.DiscountPrice), c.IsPremium, c.Approved, c.IsDeleted,
			c.Location, c.Thumbnail, c.MetaTitle, c.MetaDescription, c.InstructorID.String(),
			nullString(c.CategoryID), nullTime(c.StartDate), nullTime(c.EndDate),
			nullTime(c.EnrollmentStart), nullTime(c.EnrollmentEnd), curriculum, learnings, faqs,
			c.CreatedAt, c.UpdatedAt,
		); err != nil {
			return err
		}
		return persistence.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *CourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		`SELECT `+courseSelect+` FROM courses WHERE id = ? AND is_deleted = ?`), id.String(), false)

	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, persistence.TranslateError(err)
	}
	return c, nil
}

func (r *CourseRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return persistence.Exists(ctx, r.db, r.dialect, `SELECT 1 FROM courses WHERE slug = ?`, slug)
}

// Update reescribe los campos mutables. El slug y el instructor no cambian.
func (r *CourseRepo) Update(ctx context.Context, c *domain.Course, evts ...sharedDomain.OutboxEvent) error {
	curriculum, learnings, faqs, err := marshalNested(c)
	if err != nil {
		return err
	}

	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`UPDATE courses SET title=?, description=?, type=?, access=?, level=?, status=?, price=?,
				discount_price=?, is_premium=?, approved=?, is_deleted=?, location=?, thumbnail=?,
				meta_title=?, meta_description=?, category_id=?, start_date=?, end_date=?,
				enrollment_start=?, enrollment_end=?, curriculum=?, learnings=?, faqs=?, updated_at=?
			 WHERE id=? AND is_deleted=?`),
			c.Title, c.Description, string(c.Type), string(c.Access), string(c.Level), string(c.Status), c.Price,
			nullFloat(c.DiscountPrice), c.IsPremium, c.Approved, c.IsDeleted, c.Location, c.Thumbnail,
			c.MetaTitle, c.MetaDescription, nullString(c.CategoryID), nullTime(c.StartDate), nullTime(c.EndDate),
			nullTime(c.EnrollmentStart), nullTime(c.EnrollmentEnd), curriculum, learnings, faqs, c.UpdatedAt,
			c.ID.String(), false,
		)
		if err != nil {
			return err
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrCourseNotFound
		}
		return persistence.InsertOutboxBatchTx(ctx, tx, r.dialect, evts)
	})
}

func (r *CourseRepo) List(ctx context.Context, criteria sharedDomain.Criteria, opts query.Options) ([]*domain.Course, int, error) {
	c := sharedDomain.And(sharedDomain.Eq("isDeleted", false))
	if criteria != nil {
		c.Criterias = append(c.Criterias, criteria)
	}
	return persistence.QueryPage(ctx, r.db, r.dialect, "courses", courseSelect, c, opts, courseColumns, scanCourse)
}

func scanCourse(s persistence.RowScanner) (*domain.Course, error) {
	var (
		c                                  domain.Course
		courseType, access, level, status  string
		discount                           sql.NullFloat64
		category                           sql.NullString
		start, end, enrollStart, enrollEnd sql.NullTime
		curriculum, learnings, faqs        string
	)
	if err := s.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &courseType, &access, &level, &status,
		&c.Price, &discount, &c.IsPremium, &c.Approved, &c.IsDeleted, &c.Location, &c.Thumbnail,
		&c.MetaTitle, &c.MetaDescription, &c.InstructorID, &category, &start, &end, &enrollStart, &enrollEnd,
		&curriculum, &learnings, &faqs, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.Type = domain.CourseType(courseType)
	c.Access = domain.Access(access)
	c.Level = domain.Level(level)
	c.Status = domain.Status(status)
	if discount.Valid {
		c.DiscountPrice = &discount.Float64
	}
	if category.Valid {
		c.CategoryID = &category.String
	}
	c.StartDate = timePtr(start)
	c.EndDate = timePtr(end)
	c.EnrollmentStart = timePtr(enrollStart)
	c.EnrollmentEnd = timePtr(enrollEnd)

	if err := unmarshalNested(&c, curriculum, learnings, faqs); err != nil {
		return nil, err
	}
	return &c, nil
}

func marshalNested(c *domain.Course) (curriculum, learnings, faqs string, err error) {
	parts := []interface{}{c.Curriculum, c.Learnings, c.FAQs}
	out := make([]string, len(parts))
	for i, p := range parts {
		b, err := json.Marshal(p)
		if err != nil {
			return "", "", "", fmt.Errorf("marshal course nested items: %w", err)
		}
		// un slice nil se guarda como lista vacía
		if string(b) == "null" {
			b = []byte("[]")
		}
		out[i] = string(b)
	}
	return out[0], out[1], out[2], nil
}

func unmarshalNested(c *domain.Course, curriculum, learnings, faqs string) error {
	c.Curriculum = []domain.CurriculumItem{}
	c.Learnings = []domain.Learning{}
	c.FAQs = []domain.FAQ{}

	for _, p := range []struct {
		raw  string
		dest interface{}
	}{
		{curriculum, &c.Curriculum},
		{learnings, &c.Learnings},
		{faqs, &c.FAQs},
	} {
		if p.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(p.raw), p.dest); err != nil {
			return fmt.Errorf("unmarshal course nested items: %w", err)
		}
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

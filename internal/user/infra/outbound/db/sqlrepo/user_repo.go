package sqlrepo

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/persistence"
	"github.com/davicafu/academylab/shared/platform/query"
)

const userSelect = `id, first_name, last_name, email, password_hash, phone, role,
	is_active, is_verified, is_blocked, is_deleted, profile_photo, last_login_at, created_at, updated_at`

// userColumns mapea los campos públicos a columnas. isDeleted sólo lo usa el repo.
var userColumns = persistence.Columns{
	"id":         "id",
	"firstName":  "first_name",
	"lastName":   "last_name",
	"email":      "email",
	"phone":      "phone",
	"role":       "role",
	"isActive":   "is_active",
	"isVerified": "is_verified",
	"isBlocked":  "is_blocked",
	"isDeleted":  "is_deleted",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// UserRepo implementa domain.UserRepository sobre database/sql (Postgres o SQLite).
type UserRepo struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.UserRepository = (*UserRepo)(nil)

func NewUserRepo(db *sql.DB, dialect persistence.Dialect) *UserRepo {
	return &UserRepo{db: db, dialect: dialect}
}

// ------------------ Métodos ------------------

// Create inserta usuario y evento en transacción
func (r *UserRepo) Create(ctx context.Context, u *domain.User, evt sharedDomain.OutboxEvent) error {
	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`INSERT INTO users (`+userSelect+`)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`),
			u.ID.String(), u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Phone, string(u.Role),
			u.IsActive, u.IsVerified, u.IsBlocked, u.IsDeleted, u.ProfilePhoto, nullTime(u.LastLoginAt),
			u.CreatedAt, u.UpdatedAt,
		); err != nil {
			return err
		}
		return persistence.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		`SELECT `+userSelect+` FROM users WHERE id = ? AND is_deleted = ?`), id.String(), false)
	return r.scanOne(row)
}

// GetByEmail compara el email sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		`SELECT `+userSelect+` FROM users WHERE LOWER(email) = ? AND is_deleted = ?`),
		strings.ToLower(strings.TrimSpace(email)), false)
	return r.scanOne(row)
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return persistence.Exists(ctx, r.db, r.dialect,
		`SELECT 1 FROM users WHERE LOWER(email) = ?`, strings.ToLower(strings.TrimSpace(email)))
}

// Update actualiza usuario y crea los eventos Outbox en transacción
func (r *UserRepo) Update(ctx context.Context, u *domain.User, evts ...sharedDomain.OutboxEvent) error {
	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`UPDATE users SET first_name=?, last_name=?, phone=?, role=?, password_hash=?,
				is_active=?, is_verified=?, is_blocked=?, profile_photo=?, last_login_at=?, updated_at=?
			 WHERE id=? AND is_deleted=?`),
			u.FirstName, u.LastName, u.Phone, string(u.Role), u.PasswordHash,
			u.IsActive, u.IsVerified, u.IsBlocked, u.ProfilePhoto, nullTime(u.LastLoginAt), u.UpdatedAt,
			u.ID.String(), false,
		)
		if err != nil {
			return err
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrUserNotFound
		}

		return persistence.InsertOutboxBatchTx(ctx, tx, r.dialect, evts)
	})
}

// List excluye siempre los usuarios borrados.
func (r *UserRepo) List(ctx context.Context, criteria sharedDomain.Criteria, opts query.Options) ([]*domain.User, int, error) {
	c := sharedDomain.And(sharedDomain.Eq("isDeleted", false))
	if criteria != nil {
		c.Criterias = append(c.Criterias, criteria)
	}
	return persistence.QueryPage(ctx, r.db, r.dialect, "users", userSelect, c, opts, userColumns, scanUser)
}

func (r *UserRepo) scanOne(row *sql.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, persistence.TranslateError(err)
	}
	return u, nil
}

func scanUser(s persistence.RowScanner) (*domain.User, error) {
	var (
		u         domain.User
		role      string
		lastLogin sql.NullTime
	)
	if err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &role,
		&u.IsActive, &u.IsVerified, &u.IsBlocked, &u.IsDeleted, &u.ProfilePhoto, &lastLogin,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return &u, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

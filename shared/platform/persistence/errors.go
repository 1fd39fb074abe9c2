package persistence

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/davicafu/academylab/shared/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgConnectionException = "08"

	msgDuplicate  = "Duplicate field value"
	msgForeignKey = "Foreign key constraint failed"
)

// TranslateError convierte errores del driver en la taxonomía de dominio.
// Los errores que ya son de dominio pasan tal cual.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return &domain.ConflictError{Msg: msgDuplicate, Err: err}
		case pgErr.Code == pgForeignKeyViolation:
			return &domain.ConflictError{Msg: msgForeignKey, ForeignKey: true, Err: err}
		case strings.HasPrefix(pgErr.Code, pgConnectionException):
			return &domain.UpstreamError{Service: "database", Gateway: true, Err: err}
		}
		return domain.NewUpstreamError("database", err)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		if c := translateSQLite(liteErr); c != nil {
			return c
		}
		return domain.NewUpstreamError("database", err)
	}

	if isConnectivity(err) {
		return &domain.UpstreamError{Service: "database", Gateway: true, Err: err}
	}
	return domain.NewUpstreamError("database", err)
}

func translateSQLite(err *sqlite.Error) error {
	switch err.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return &domain.ConflictError{Msg: msgDuplicate, Err: err}
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return &domain.ConflictError{Msg: msgForeignKey, ForeignKey: true, Err: err}
	}

	// sin códigos extendidos sólo llega SQLITE_CONSTRAINT; miramos el mensaje
	if err.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return &domain.ConflictError{Msg: msgDuplicate, Err: err}
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return &domain.ConflictError{Msg: msgForeignKey, ForeignKey: true, Err: err}
		}
	}
	return nil
}

func isConnectivity(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isDomainError(err error) bool {
	var (
		v *domain.ValidationError
		n *domain.NotFoundError
		c *domain.ConflictError
		u *domain.UpstreamError
		a *domain.AuthenticationError
		z *domain.AuthorizationError
	)
	return errors.As(err, &v) || errors.As(err, &n) || errors.As(err, &c) ||
		errors.As(err, &u) || errors.As(err, &a) || errors.As(err, &z)
}

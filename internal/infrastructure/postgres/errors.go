package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
)

// Códigos SQLSTATE usados por los repositorios.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
	codeInvalidTextRepr      = "22P02"
	codeNumericOutOfRange    = "22003"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// isSerializationFailure 40001 (serializable) o 40P01 (deadlock): la tx se puede reintentar completa.
func isSerializationFailure(err error) bool {
	code := pgCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// isConnectionError fallas de conexión: clase 08, apagado del servidor, dial o pool cerrado.
func isConnectionError(err error) bool {
	code := pgCode(err)
	if strings.HasPrefix(code, "08") || code == codeAdminShutdown {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return strings.Contains(err.Error(), "closed pool")
}

// isDataException valores que la BD no puede representar: texto que no es un UUID (22P02)
// o número fuera del rango de la columna (22003).
func isDataException(err error) bool {
	code := pgCode(err)
	return code == codeInvalidTextRepr || code == codeNumericOutOfRange
}

// mapStoreError traduce errores del driver a la taxonomía del dominio. Los errores de dominio
// y de contexto se devuelven tal cual. Las excepciones de datos no arrastran el texto del driver.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch {
	case isSerializationFailure(err):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	case isDataException(err):
		return fmt.Errorf("%w: valor fuera de formato o de rango", domain.ErrInvalidInput)
	}
	return err
}

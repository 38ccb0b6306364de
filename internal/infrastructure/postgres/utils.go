package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta la violación de unicidad de Postgres (23505):
// rut duplicado en clientes, email duplicado en usuarios, segundo documento
// para un mismo folio. Acepta el error como *pgconn.PgError o envuelto
// en texto por capas intermedias.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

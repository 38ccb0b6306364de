package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/melisync/ventas-api/internal/application/venta"
	"github.com/melisync/ventas-api/internal/domain/repository"
)

// Ensure TxRunner implements venta.VentaTxRunner.
var _ venta.VentaTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVenta inicia una transacción, ejecuta fn con los repos de notas y
// productos atados a la tx y hace Commit o Rollback. Finalizar una venta
// descuenta stock y graba la nota como una sola unidad.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	notaRepo repository.NotaVentaRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	notaRepo := NewNotaVentaRepository(tx)
	productoRepo := NewProductoRepository(tx)

	if err := fn(notaRepo, productoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

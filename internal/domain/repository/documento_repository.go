package repository

import "github.com/melisync/ventas-api/internal/domain/entity"

// DocumentoRepository define el puerto de persistencia para los registros de
// documentos emitidos (el blob vive en el almacén de objetos).
type DocumentoRepository interface {
	Create(doc *entity.DocumentoVenta) error
	GetByFolio(companyID string, folio int64) (*entity.DocumentoVenta, error)
	ListByCompany(companyID string) ([]*entity.DocumentoVenta, error)
}

package venta

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
	domventa "github.com/melisync/ventas-api/internal/domain/venta"
	"github.com/melisync/ventas-api/internal/metrics"
)

// EmisionUseCase emite el documento legal de una venta finalizada y lo
// almacena de forma durable. La emisión es explícitamente bifásica:
//
//	fase 1: marcar la nota como Emitido (tipo, datos de factura, documento pendiente)
//	fase 2: generar el PDF y almacenarlo (blob + registro)
//
// Si la fase 2 falla, la nota queda Emitido con documento pendiente: un
// estado consultable y reintentable de forma idempotente, nunca una
// inconsistencia muda.
type EmisionUseCase struct {
	notaRepo    repository.NotaVentaRepository
	clienteRepo repository.ClienteRepository
	docRepo     repository.DocumentoRepository
	generador   GeneradorPDF
	almacen     AlmacenDocumentos
}

// NewEmisionUseCase construye el caso de uso.
func NewEmisionUseCase(
	notaRepo repository.NotaVentaRepository,
	clienteRepo repository.ClienteRepository,
	docRepo repository.DocumentoRepository,
	generador GeneradorPDF,
	almacen AlmacenDocumentos,
) *EmisionUseCase {
	return &EmisionUseCase{
		notaRepo:    notaRepo,
		clienteRepo: clienteRepo,
		docRepo:     docRepo,
		generador:   generador,
		almacen:     almacen,
	}
}

// Emitir ejecuta el flujo completo. Guardas: la nota debe estar exactamente
// en Finalizado con type_emission nulo; una factura exige razón social y rut,
// validados antes de cualquier efecto.
func (uc *EmisionUseCase) Emitir(ctx context.Context, companyID string, folio int64, in dto.EmitirRequest) (*dto.NotaVentaResponse, error) {
	tipo, err := domventa.ParseTipoEmision(in.TipoEmision)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	if tipo == domventa.EmisionFactura && (in.RazonSocial == "" || in.Rut == "") {
		return nil, fmt.Errorf("%w: una factura requiere razón social y rut", domain.ErrValidacion)
	}

	nota, err := uc.notaRepo.GetByFolio(companyID, folio)
	if err != nil {
		return nil, err
	}
	if nota == nil {
		return nil, domain.ErrNotaNoEncontrada
	}
	if nota.Estado != domventa.EstadoFinalizado || nota.TipoEmision != "" {
		return nil, fmt.Errorf("%w: solo una nota Finalizado sin emisión previa puede emitirse (estado actual: %s)",
			domain.ErrTransicionInvalida, nota.Estado)
	}

	// Fase 1: marcar emitida. Desde aquí la nota es Emitido pase lo que pase.
	// El nombre de empresa se persiste junto al resto para que un reintento
	// regenere el mismo encabezado.
	if err := uc.notaRepo.MarcarEmitida(folio, tipo, in.Observacion, in.NombreEmpresa, in.RazonSocial, in.Rut); err != nil {
		return nil, err
	}
	metrics.Transiciones.WithLabelValues(string(domventa.EstadoFinalizado), string(domventa.EstadoEmitido)).Inc()
	nota.Estado = domventa.EstadoEmitido
	nota.TipoEmision = tipo
	nota.EstadoDocumento = domventa.DocumentoPendiente
	nota.RazonSocial = in.RazonSocial
	nota.Rut = in.Rut
	nota.NombreEmpresa = in.NombreEmpresa
	if in.Observacion != "" {
		nota.Observacion = in.Observacion
	}

	// Fase 2: generar y almacenar. Un fallo deja documento pendiente.
	lineas, err := uc.notaRepo.GetLineas(folio)
	if err != nil {
		return nil, uc.documentoPendiente(folio, err)
	}
	var cliente *entity.Cliente
	if nota.ClienteID != "" {
		cliente, _ = uc.clienteRepo.GetByID(nota.ClienteID)
	}
	contenido, err := uc.generador.GenerarDocumento(nota, lineas, cliente, in.NombreEmpresa)
	if err != nil {
		return nil, uc.documentoPendiente(folio, fmt.Errorf("generar PDF: %w", err))
	}
	if err := uc.almacenar(ctx, nota, contenido); err != nil {
		return nil, uc.documentoPendiente(folio, err)
	}
	nota.EstadoDocumento = domventa.DocumentoAlmacenado
	return ToNotaResponse(nota, lineas, nil), nil
}

// ReintentarSubida es la operación idempotente de remediación para notas
// Emitido con documento pendiente. Si el documento ya está almacenado
// devuelve el registro existente sin tocar nada.
func (uc *EmisionUseCase) ReintentarSubida(ctx context.Context, companyID string, folio int64) (*dto.DocumentoResponse, error) {
	if doc, err := uc.docRepo.GetByFolio(companyID, folio); err != nil {
		return nil, err
	} else if doc != nil {
		return toDocumentoResponse(doc), nil
	}

	nota, err := uc.notaRepo.GetByFolio(companyID, folio)
	if err != nil {
		return nil, err
	}
	if nota == nil {
		return nil, domain.ErrNotaNoEncontrada
	}
	if nota.Estado != domventa.EstadoEmitido {
		return nil, fmt.Errorf("%w: solo una nota emitida tiene documento que subir", domain.ErrTransicionInvalida)
	}

	lineas, err := uc.notaRepo.GetLineas(folio)
	if err != nil {
		return nil, err
	}
	var cliente *entity.Cliente
	if nota.ClienteID != "" {
		cliente, _ = uc.clienteRepo.GetByID(nota.ClienteID)
	}
	contenido, err := uc.generador.GenerarDocumento(nota, lineas, cliente, nota.NombreEmpresa)
	if err != nil {
		metrics.SubidasFallidas.Inc()
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	if err := uc.almacenar(ctx, nota, contenido); err != nil {
		metrics.SubidasFallidas.Inc()
		return nil, err
	}
	doc, err := uc.docRepo.GetByFolio(companyID, folio)
	if err != nil || doc == nil {
		return nil, domain.ErrRespuestaInesperada
	}
	return toDocumentoResponse(doc), nil
}

// SubirDocumento persiste un PDF producido externamente (multipart). Un
// contenido vacío o que no es PDF es un error de validación (422), distinto
// de cualquier otro fallo.
func (uc *EmisionUseCase) SubirDocumento(ctx context.Context, companyID string, folio int64, contenido []byte) (*dto.DocumentoResponse, error) {
	if len(contenido) == 0 {
		return nil, fmt.Errorf("%w: documento vacío", domain.ErrValidacion)
	}
	if !bytes.HasPrefix(contenido, []byte("%PDF")) {
		return nil, fmt.Errorf("%w: el documento no es un PDF", domain.ErrValidacion)
	}
	nota, err := uc.notaRepo.GetByFolio(companyID, folio)
	if err != nil {
		return nil, err
	}
	if nota == nil {
		return nil, domain.ErrNotaNoEncontrada
	}
	if nota.Estado != domventa.EstadoEmitido {
		return nil, fmt.Errorf("%w: solo una nota emitida admite documento", domain.ErrTransicionInvalida)
	}

	if doc, err := uc.docRepo.GetByFolio(companyID, folio); err != nil {
		return nil, err
	} else if doc != nil {
		// Re-subida del mismo folio: se sobrescribe el blob, el registro se conserva.
		if err := uc.almacen.Guardar(ctx, doc.ObjectKey, contenido); err != nil {
			return nil, err
		}
		return toDocumentoResponse(doc), nil
	}
	if err := uc.almacenar(ctx, nota, contenido); err != nil {
		return nil, err
	}
	doc, err := uc.docRepo.GetByFolio(companyID, folio)
	if err != nil || doc == nil {
		return nil, domain.ErrRespuestaInesperada
	}
	return toDocumentoResponse(doc), nil
}

// Descargar devuelve el contenido PDF y el nombre de archivo sugerido.
func (uc *EmisionUseCase) Descargar(ctx context.Context, companyID string, folio int64) ([]byte, string, error) {
	doc, err := uc.docRepo.GetByFolio(companyID, folio)
	if err != nil {
		return nil, "", err
	}
	if doc == nil {
		return nil, "", domain.ErrDocumentoNoEncontrado
	}
	contenido, err := uc.almacen.Obtener(ctx, doc.ObjectKey)
	if err != nil {
		return nil, "", fmt.Errorf("obtener documento: %w", err)
	}
	nombre := fmt.Sprintf("venta_%d.pdf", folio)
	return contenido, nombre, nil
}

// ListarEmitidas devuelve los documentos emitidos de la empresa.
func (uc *EmisionUseCase) ListarEmitidas(ctx context.Context, companyID string) ([]*dto.DocumentoResponse, error) {
	docs, err := uc.docRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentoResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentoResponse(d))
	}
	return out, nil
}

// almacenar guarda el blob, registra el documento y cierra la fase 2.
func (uc *EmisionUseCase) almacenar(ctx context.Context, nota *entity.NotaVenta, contenido []byte) error {
	key := ClaveDocumento(nota.CompanyID, nota.Folio)
	if err := uc.almacen.Guardar(ctx, key, contenido); err != nil {
		return fmt.Errorf("almacenar documento: %w", err)
	}
	doc := &entity.DocumentoVenta{
		ID:        uuid.New().String(),
		Folio:     nota.Folio,
		CompanyID: nota.CompanyID,
		Tipo:      nota.TipoEmision,
		ObjectKey: key,
		Tamano:    int64(len(contenido)),
		CreatedAt: time.Now(),
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return fmt.Errorf("registrar documento: %w", err)
	}
	if err := uc.notaRepo.UpdateEstadoDocumento(nota.Folio, domventa.DocumentoAlmacenado); err != nil {
		return err
	}
	metrics.DocumentosAlmacenados.Inc()
	return nil
}

// documentoPendiente registra el fallo parcial y lo envuelve en
// ErrDocumentoPendiente: la nota ya quedó Emitido en el backend.
func (uc *EmisionUseCase) documentoPendiente(folio int64, causa error) error {
	metrics.SubidasFallidas.Inc()
	log.Error().Err(causa).Int64("folio", folio).
		Msg("nota emitida pero el documento quedó pendiente")
	return fmt.Errorf("%w: %v", domain.ErrDocumentoPendiente, causa)
}

// ClaveDocumento construye la clave del blob en el almacén de objetos.
func ClaveDocumento(companyID string, folio int64) string {
	return fmt.Sprintf("documentos/%s/%d.pdf", companyID, folio)
}

func toDocumentoResponse(d *entity.DocumentoVenta) *dto.DocumentoResponse {
	return &dto.DocumentoResponse{
		ID:        d.ID,
		Folio:     d.Folio,
		Tipo:      string(d.Tipo),
		Tamano:    d.Tamano,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

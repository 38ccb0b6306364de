package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appventa "github.com/melisync/ventas-api/internal/application/venta"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
	domventa "github.com/melisync/ventas-api/internal/domain/venta"
	apphttp "github.com/melisync/ventas-api/internal/interfaces/http"
)

// Fakes mínimos para levantar el handler de documentos con el caso de uso real.

type notaRepoStub struct {
	notas map[int64]*entity.NotaVenta
}

func (s *notaRepoStub) Create(nota *entity.NotaVenta, lineas []*entity.LineaVenta) (int64, error) {
	return 0, nil
}
func (s *notaRepoStub) ReplaceBorrador(nota *entity.NotaVenta, lineas []*entity.LineaVenta) error {
	return nil
}
func (s *notaRepoStub) GetByFolio(companyID string, folio int64) (*entity.NotaVenta, error) {
	n, ok := s.notas[folio]
	if !ok || n.CompanyID != companyID {
		return nil, nil
	}
	return n, nil
}
func (s *notaRepoStub) GetLineas(folio int64) ([]*entity.LineaVenta, error) { return nil, nil }
func (s *notaRepoStub) List(companyID string, filtro repository.FiltroVentas) ([]*entity.NotaVenta, error) {
	return nil, nil
}
func (s *notaRepoStub) UpdateEstado(folio int64, estado domventa.Estado) error { return nil }
func (s *notaRepoStub) MarcarEmitida(folio int64, tipo domventa.TipoEmision, observacion, nombreEmpresa, razonSocial, rut string) error {
	return nil
}
func (s *notaRepoStub) UpdateEstadoDocumento(folio int64, estado domventa.EstadoDocumento) error {
	if n, ok := s.notas[folio]; ok {
		n.EstadoDocumento = estado
	}
	return nil
}
func (s *notaRepoStub) Delete(companyID string, folio int64) error { return nil }

type clienteRepoStub struct{}

func (clienteRepoStub) Create(c *entity.Cliente) error             { return nil }
func (clienteRepoStub) GetByID(id string) (*entity.Cliente, error) { return nil, nil }
func (clienteRepoStub) GetByCompanyAndRut(companyID, rut string) (*entity.Cliente, error) {
	return nil, nil
}
func (clienteRepoStub) ListByCompany(companyID string, limit, offset int) ([]*entity.Cliente, error) {
	return nil, nil
}
func (clienteRepoStub) Update(c *entity.Cliente) error { return nil }
func (clienteRepoStub) Delete(id string) error         { return nil }

type documentoRepoStub struct {
	docs map[int64]*entity.DocumentoVenta
}

func (s *documentoRepoStub) Create(doc *entity.DocumentoVenta) error {
	s.docs[doc.Folio] = doc
	return nil
}
func (s *documentoRepoStub) GetByFolio(companyID string, folio int64) (*entity.DocumentoVenta, error) {
	d, ok := s.docs[folio]
	if !ok || d.CompanyID != companyID {
		return nil, nil
	}
	return d, nil
}
func (s *documentoRepoStub) ListByCompany(companyID string) ([]*entity.DocumentoVenta, error) {
	return nil, nil
}

type generadorStub struct{}

func (generadorStub) GenerarDocumento(nota *entity.NotaVenta, lineas []*entity.LineaVenta, cliente *entity.Cliente, nombreEmpresa string) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

type almacenStub struct {
	blobs map[string][]byte
}

func (s *almacenStub) Guardar(ctx context.Context, key string, contenido []byte) error {
	s.blobs[key] = contenido
	return nil
}
func (s *almacenStub) Obtener(ctx context.Context, key string) ([]byte, error) {
	return s.blobs[key], nil
}

// buildDocumentoApp monta POST /api/document-sale con una nota emitida lista
// para recibir un documento externo.
func buildDocumentoApp(folio int64) (*fiber.App, *documentoRepoStub) {
	notas := &notaRepoStub{notas: map[int64]*entity.NotaVenta{
		folio: {
			Folio:           folio,
			CompanyID:       testCompanyID,
			Estado:          domventa.EstadoEmitido,
			TipoEmision:     domventa.EmisionBoleta,
			EstadoDocumento: domventa.DocumentoPendiente,
			CreatedAt:       time.Now(),
		},
	}}
	docs := &documentoRepoStub{docs: make(map[int64]*entity.DocumentoVenta)}
	uc := appventa.NewEmisionUseCase(notas, clienteRepoStub{}, docs, generadorStub{}, &almacenStub{blobs: make(map[string][]byte)})

	app := fiber.New()
	handler := apphttp.NewDocumentoHandler(uc)
	app.Post("/api/document-sale", apphttp.AuthMiddleware(testJWTSecret), handler.Subir)
	return app, docs
}

// multipartDocumento arma el body multipart con los campos del contrato:
// "id_folio" y el archivo "documento".
func multipartDocumento(t *testing.T, folio, contenido string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("id_folio", folio))
	part, err := w.CreateFormFile("documento", "venta.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte(contenido))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestSubirDocumento_CamposMultipartDelContrato(t *testing.T) {
	app, docs := buildDocumentoApp(1500)

	body, contentType := multipartDocumento(t, "1500", "%PDF-1.7 contenido externo")
	req := httptest.NewRequest(http.MethodPost, "/api/document-sale", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode,
		"id_folio + documento deben llegar al caso de uso")

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, float64(1500), out["id_folio"])
	require.NotNil(t, docs.docs[1500], "el registro del documento debe persistirse")
}

func TestSubirDocumento_ContenidoNoPDFRetorna422(t *testing.T) {
	app, _ := buildDocumentoApp(1500)

	body, contentType := multipartDocumento(t, "1500", "<html>no soy pdf</html>")
	req := httptest.NewRequest(http.MethodPost, "/api/document-sale", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSubirDocumento_SinFolioRetorna400(t *testing.T) {
	app, _ := buildDocumentoApp(1500)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("documento", "venta.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/document-sale", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, "admin"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

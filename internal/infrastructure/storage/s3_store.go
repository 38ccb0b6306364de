// Package storage implementa el almacén de objetos para los documentos
// emitidos: S3 (o compatible) en producción, disco local como fallback.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/melisync/ventas-api/internal/application/venta"
	"github.com/melisync/ventas-api/pkg/config"
)

var _ venta.AlmacenDocumentos = (*S3Store)(nil)

// S3Store guarda los PDF en un bucket S3 o compatible (Endpoint configurable
// para MinIO, R2, etc.).
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store construye el cliente con credenciales estáticas de la configuración.
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configurar cliente S3: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Guardar sube el contenido bajo la clave. Sobrescribe si ya existe.
func (s *S3Store) Guardar(ctx context.Context, key string, contenido []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(contenido),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Obtener descarga el contenido de la clave.
func (s *S3Store) Obtener(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()
	contenido, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return contenido, nil
}

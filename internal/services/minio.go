package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"time"

	"fastfeast_back_end/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

func imageBucket() string {
	if b := os.Getenv("MINIO_BUCKET"); b != "" {
		return b
	}
	return "fastfeast-images"
}

// UploadImage pousse une photo de restaurant ou de plat dans MinIO et
// retourne l'URL publique de l'objet.
func UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Nom unique pour éviter les collisions entre uploads
	objectName := uuid.NewString() + path.Ext(file.Filename)

	_, err = database.MinIO.PutObject(ctx, imageBucket(), objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), imageBucket(), objectName), nil
}

// GenerateSignedURL génère une URL signée à durée limitée pour un objet.
func GenerateSignedURL(ctx context.Context, objectName string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, imageBucket(), objectName, duration, make(url.Values))
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	a "bitwise74/expense-api/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ReceiptArchive keeps a copy of scanned receipt images in S3
type ReceiptArchive struct {
	S3       *a.S3Client
	uploader *manager.Uploader
}

func NewReceiptArchive(c *a.S3Client) *ReceiptArchive {
	return &ReceiptArchive{
		S3:       c,
		uploader: manager.NewUploader(c.C),
	}
}

// ObjectKey returns a fresh key for a receipt of userID with the given extension
func ObjectKey(userID, ext string) string {
	return path.Join("receipts", userID, uuid.NewString()+ext)
}

// Store uploads r under a new key and returns it
func (r *ReceiptArchive) Store(ctx context.Context, userID, ext, contentType string, body io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	key := ObjectKey(userID, ext)

	_, err := r.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      r.S3.Bucket,
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt to S3, %w", err)
	}

	return key, nil
}

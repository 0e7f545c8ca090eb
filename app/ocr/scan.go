package ocr

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/ai"
	"bitwise74/expense-api/pkg/validators"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const formField = "receipts"

type scanResult struct {
	*ai.Receipt
	ArchiveKey string `json:"archiveKey,omitempty"`
}

// Scan reads every receipt image in the multipart form and returns one result
// per image in upload order
func Scan(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	form, err := c.MultipartForm()
	if err != nil {
		if strings.Contains(err.Error(), "http: request body too large") {
			reply.Fail(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
			return
		}

		reply.Fail(c, http.StatusBadRequest, "Invalid multipart form")

		zap.L().Debug("Failed to parse multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	files := form.File[formField]

	if len(files) == 0 {
		reply.Fail(c, http.StatusBadRequest, validators.ErrNoFile.Error())
		return
	}

	if len(files) > d.Settings.MaxUploadFiles {
		reply.Fail(c, http.StatusBadRequest, fmt.Sprintf("%v, at most %d images are allowed", validators.ErrTooManyFiles, d.Settings.MaxUploadFiles))
		return
	}

	results := make([]scanResult, 0, len(files))

	for _, fh := range files {
		res, code, err := scanOne(c.Request.Context(), d, userID, fh)
		if err != nil {
			if code == 0 {
				reply.Error(c, err, "Receipt")
				return
			}

			if code >= http.StatusInternalServerError {
				reply.Fail(c, code, "Internal server error")

				zap.L().Error("Failed to process receipt image", zap.Error(err), zap.String("requestID", requestID))
				return
			}

			reply.Fail(c, code, fmt.Sprintf("%s: %v", fh.Filename, err))
			return
		}

		results = append(results, *res)
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
	})
}

// scanOne validates fh, spools it to a temp file and runs it through the
// scanner. A non zero code is returned for failures before the model call.
func scanOne(ctx context.Context, d *internal.Deps, userID string, fh *multipart.FileHeader) (*scanResult, int, error) {
	code, f, mime, err := validators.ReceiptImageValidator(fh, d.Settings.MaxUploadSize)
	if err != nil {
		return nil, code, err
	}
	defer f.Close()

	var ext string
	if m := mimetype.Lookup(mime); m != nil {
		ext = m.Extension()
	}

	tmp, err := os.CreateTemp("", "receipt-*"+ext)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to create temp file, %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, f); err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to write temp file, %w", err)
	}

	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to read temp file, %w", err)
	}

	receipt, err := d.Scanner.Scan(ctx, ai.Image{MimeType: mime, Data: data})
	if err != nil {
		return nil, 0, err
	}

	res := &scanResult{Receipt: receipt}

	if d.Archive != nil {
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			zap.L().Warn("Failed to rewind receipt for archiving", zap.Error(err))
			return res, 0, nil
		}

		key, err := d.Archive.Store(ctx, userID, ext, mime, tmp)
		if err != nil {
			zap.L().Warn("Failed to archive receipt", zap.Error(err), zap.String("userID", userID))
			return res, 0, nil
		}

		res.ArchiveKey = key
	}

	return res, 0, nil
}

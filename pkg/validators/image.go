package validators

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNoFile              = invalid("no file provided")
	ErrFileTooLarge        = invalid("file too large")
	ErrFileNameTooLong     = invalid("file name is too long")
	ErrFileTypeUnsupported = invalid("unsupported file type, only images are accepted")
	ErrTooManyFiles        = invalid("too many files provided")
)

const maxFileNameSize = 255

// ReceiptImageTypes are the image types the model accepts inline
var ReceiptImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/heic",
	"image/heif",
	"image/gif",
}

// ReceiptImageValidator checks an uploaded receipt image. On success the opened
// file is returned rewound to the start together with its sniffed MIME type.
// The caller has to close the file.
func ReceiptImageValidator(fh *multipart.FileHeader, maxSize int64) (int, multipart.File, string, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, "", ErrNoFile
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, "", ErrFileNameTooLong
	}

	if fh.Size > maxSize {
		return http.StatusRequestEntityTooLarge, nil, "", ErrFileTooLarge
	}

	// Don't trust the declared content type, sniff the actual bytes
	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, "", err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	if !mimetype.EqualsAny(mime.String(), ReceiptImageTypes...) {
		f.Close()
		return http.StatusBadRequest, nil, "", ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	return 0, f, mime.String(), nil
}

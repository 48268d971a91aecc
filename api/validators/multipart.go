package validators

import (
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
)

// FileUpload carries one multipart file part read into memory.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// ParseImageUpload extracts an optional image part from a multipart form.
// A request without the field returns (nil, nil); a non-image part or a part
// above maxBytes is a validation error.
func ParseImageUpload(r *http.Request, field string, maxBytes int64) (*FileUpload, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded file")
	}
	defer file.Close()

	if header.Size > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaded file too large").
			WithDetails(map[string]any{"field": field, "max_bytes": maxBytes})
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaded file must be an image").
			WithDetails(map[string]any{"field": field, "content_type": contentType})
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded file")
	}
	if int64(len(data)) > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaded file too large").
			WithDetails(map[string]any{"field": field, "max_bytes": maxBytes})
	}

	return &FileUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/minhle2212044/greencycle-backend/api/validators"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/storage/gcs"
)

// maxImageBytes caps uploaded images at 5 MiB.
const maxImageBytes = 5 << 20

// decodeInput reads the request payload into dest. Plain JSON bodies go
// through the shared decoder; multipart requests carry their JSON in the
// "data" form field so an image part can ride alongside.
func decodeInput(r *http.Request, dest any) error {
	if !isMultipart(r) {
		return validators.DecodeJSONBody(r, dest)
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	raw := r.FormValue("data")
	if raw == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing data field")
	}

	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]any{"error": err.Error()})
	}
	return validators.ValidateStruct(dest)
}

// imageFile extracts the optional "image" part of a multipart request.
// JSON requests and multipart requests without the part both return nil.
func imageFile(r *http.Request) (*gcs.File, error) {
	if !isMultipart(r) {
		return nil, nil
	}
	upload, err := validators.ParseImageUpload(r, "image", maxImageBytes)
	if err != nil || upload == nil {
		return nil, err
	}
	return &gcs.File{
		Filename:    upload.Filename,
		ContentType: upload.ContentType,
		Data:        upload.Data,
	}, nil
}

// pageParams reads the shared ?page=&limit= query pair.
func pageParams(r *http.Request) (int, int, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return 0, 0, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 100)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

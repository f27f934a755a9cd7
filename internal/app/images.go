package app

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/strutynskyi/movie-catalog/internal/domain"
)

const (
	payloadPart = "payload"
	imagePart   = "image"

	// multipartOverhead leaves room for the payload part and form boundaries
	// on top of the image size limit.
	multipartOverhead = 1 << 20
)

var supportedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// readMultipart decodes the JSON payload part into dst and returns the
// optional image part. The image type is detected from its content, the
// client supplied content type is ignored.
func (app *Application) readMultipart(w http.ResponseWriter, r *http.Request, dst any) (*domain.Image, error) {
	maxSize := app.config.Images.MaxSize

	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	err := r.ParseMultipartForm(multipartOverhead)
	if err != nil {
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &maxBytesError):
			return nil, domain.ErrImageTooLarge
		case errors.Is(err, http.ErrNotMultipart):
			return nil, malformed("request must be multipart/form-data")
		default:
			return nil, malformed("request body is not a valid multipart form")
		}
	}
	defer r.MultipartForm.RemoveAll()

	payload, err := readPayloadPart(r.MultipartForm)
	if err != nil {
		return nil, err
	}

	err = decodeJSON(payload, dst)
	if err != nil {
		return nil, err
	}

	files := r.MultipartForm.File[imagePart]
	if len(files) == 0 {
		return nil, nil
	}

	return readImagePart(files[0], maxSize)
}

// readPayloadPart accepts the payload either as a plain form value or as a
// file part, which is what most clients send for application/json parts.
func readPayloadPart(form *multipart.Form) ([]byte, error) {
	if values := form.Value[payloadPart]; len(values) > 0 {
		return []byte(values[0]), nil
	}

	files := form.File[payloadPart]
	if len(files) == 0 {
		return nil, malformed("multipart part %q is required", payloadPart)
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func readImagePart(header *multipart.FileHeader, maxSize int64) (*domain.Image, error) {
	if header.Size > maxSize {
		return nil, domain.ErrImageTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > maxSize {
		return nil, domain.ErrImageTooLarge
	}
	if len(data) == 0 {
		return nil, malformed("multipart part %q must not be empty", imagePart)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), supportedImageTypes...) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImage, mtype.String())
	}

	return &domain.Image{
		Name:        header.Filename,
		ContentType: mtype.String(),
		Data:        data,
	}, nil
}

func (app *Application) writeImage(w http.ResponseWriter, image *domain.Image) {
	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Data)))

	if image.Name != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": image.Name}))
	}

	w.WriteHeader(http.StatusOK)
	w.Write(image.Data)
}

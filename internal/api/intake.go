package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxImageBytes is the upload cap advertised to clients: 2 MiB.
const maxImageBytes = 2 << 20

// bodySlackBytes leaves room for text fields and multipart framing on top
// of the image cap when bounding the whole request body.
const bodySlackBytes = 512 * 1024

// errImageTooLarge marks an upload rejected by the size cap.
var errImageTooLarge = errors.New("image exceeds the upload cap")

// uploadedImage is one file pulled out of a multipart form. The declared
// MIME type travels with the bytes; the media pipeline verifies both.
type uploadedImage struct {
	data []byte
	mime string
}

// productForm is the parsed body of a product write request. A nil image
// means no file field arrived, which create treats as a missing image and
// update treats as "keep the current derivatives".
type productForm struct {
	values url.Values
	image  *uploadedImage
}

// field returns a pointer to the first submitted value for name, or nil
// when the field was absent from the request. Presence and emptiness are
// distinct: an empty submitted value still fails required rules, while an
// absent field skips optional validation entirely.
func (f *productForm) field(name string) *string {
	values, ok := f.values[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// parseProductForm reads the multipart body of a product write request,
// enforcing the image size cap before any decode work. Non-multipart
// bodies yield an empty form rather than an error, so update requests
// without a new image can omit the multipart encoding altogether.
func parseProductForm(w http.ResponseWriter, r *http.Request) (*productForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+bodySlackBytes)

	// Memory bound above the body cap keeps parts out of temp files.
	if err := r.ParseMultipartForm(maxImageBytes + bodySlackBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return &productForm{values: url.Values{}}, nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errImageTooLarge
		}
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}

	form := &productForm{values: url.Values(r.MultipartForm.Value)}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading image field: %w", err)
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxImageBytes {
		return nil, errImageTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading image upload: %w", err)
	}

	form.image = &uploadedImage{
		data: data,
		mime: header.Header.Get("Content-Type"),
	}
	return form, nil
}

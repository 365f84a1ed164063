package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/scholarhub/internal/client/apiclient"
	"github.com/dmitrijs2005/scholarhub/internal/client/models"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
)

const (
	msgFetchDocument  = "failed to fetch document data"
	msgCreateDocument = "failed to create document"
	msgUpdateDocument = "failed to update document"
	msgDeleteDocument = "failed to delete document"
	msgFetchPages     = "failed to fetch document pages"
	msgDownload       = "failed to download document"
)

// DocumentService is the CRUD facade for documents. Its error messages are
// fixed strings; the server's error body is not shown to the user.
// Requests carry no Authorization header.
type DocumentService interface {
	GetAll(ctx context.Context) ([]models.Document, error)
	GetByID(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, form models.DocumentForm) (*models.Document, error)
	Update(ctx context.Context, id string, form models.DocumentForm) (*models.Document, error)
	Delete(ctx context.Context, id string) (*models.MessageResponse, error)
	Download(id string)
	Fetch(ctx context.Context, id string, w io.Writer) (int64, error)
	GetPages(ctx context.Context, id string) ([]string, error)
	GetPreviewURL(id, page string) string
}

type documentService struct {
	api    *apiclient.Client
	opener Opener
	logger logging.Logger
}

func NewDocumentService(api *apiclient.Client, opener Opener, logger logging.Logger) DocumentService {
	return &documentService{api: api, opener: opener, logger: logger}
}

func (d *documentService) GetAll(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := d.getJSON(ctx, "documents.list", d.api.Endpoints().Documents(), msgFetchDocument, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (d *documentService) GetByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := d.getJSON(ctx, "documents.get", d.api.Endpoints().DocumentByID(id), msgFetchDocument, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *documentService) Create(ctx context.Context, form models.DocumentForm) (*models.Document, error) {
	return d.send(ctx, "documents.create", http.MethodPost, d.api.Endpoints().Documents(), form, msgCreateDocument)
}

// Update replaces the document's metadata. The stored file is replaced
// only when form.File is set.
func (d *documentService) Update(ctx context.Context, id string, form models.DocumentForm) (*models.Document, error) {
	return d.send(ctx, "documents.update", http.MethodPut, d.api.Endpoints().DocumentByID(id), form, msgUpdateDocument)
}

func (d *documentService) Delete(ctx context.Context, id string) (*models.MessageResponse, error) {
	const op = "documents.delete"

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, d.api.Endpoints().DocumentByID(id), nil)
	if err != nil {
		return nil, err
	}

	var out models.MessageResponse
	if err := d.doJSON(ctx, op, req, msgDeleteDocument, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download hands the download link to the opener. Nothing is reported
// back to the caller.
func (d *documentService) Download(id string) {
	d.opener.Open(d.api.Endpoints().DocumentDownload(id))
}

// Fetch streams the document file into w and returns the bytes written.
func (d *documentService) Fetch(ctx context.Context, id string, w io.Writer) (int64, error) {
	const op = "documents.download"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.api.Endpoints().DocumentDownload(id), nil)
	if err != nil {
		return 0, err
	}

	resp, err := d.api.Do(ctx, op, req)
	if err != nil {
		return 0, err
	}
	defer apiclient.Close(resp)

	if !apiclient.IsSuccess(resp) {
		return 0, d.fail(ctx, op, resp.StatusCode, msgDownload, nil)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, d.fail(ctx, op, resp.StatusCode, msgDownload, err)
	}
	return n, nil
}

func (d *documentService) GetPages(ctx context.Context, id string) ([]string, error) {
	var pages []string
	if err := d.getJSON(ctx, "documents.pages", d.api.Endpoints().DocumentPages(id), msgFetchPages, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// GetPreviewURL builds the preview image URL. It performs no I/O.
func (d *documentService) GetPreviewURL(id, page string) string {
	return d.api.Endpoints().DocumentPreview(id, page)
}

func (d *documentService) getJSON(ctx context.Context, op, url, msg string, dst any) error {
	req, err := apiclient.NewJSONRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return d.doJSON(ctx, op, req, msg, dst)
}

func (d *documentService) send(ctx context.Context, op, method, url string, form models.DocumentForm, msg string) (*models.Document, error) {
	body, contentType, err := encodeDocumentForm(form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var doc models.Document
	if err := d.doJSON(ctx, op, req, msg, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *documentService) doJSON(ctx context.Context, op string, req *http.Request, msg string, dst any) error {
	resp, err := d.api.Do(ctx, op, req)
	if err != nil {
		return err
	}
	defer apiclient.Close(resp)

	if !apiclient.IsSuccess(resp) {
		return d.fail(ctx, op, resp.StatusCode, msg, nil)
	}
	if err := apiclient.DecodeJSON(resp, dst); err != nil {
		return d.fail(ctx, op, resp.StatusCode, msg, err)
	}
	return nil
}

func (d *documentService) fail(ctx context.Context, op string, status int, msg string, cause error) error {
	d.logger.Warn(ctx, "document request failed", "op", op, "status", status, "error", cause)
	return &apiclient.Error{Op: op, StatusCode: status, Message: msg, Err: cause}
}

// encodeDocumentForm writes the form in the field layout the API expects.
func encodeDocumentForm(form models.DocumentForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"title", form.Title},
		{"author", form.Author},
		{"category", form.Category},
		{"status", form.Status},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if form.File != nil {
		part, err := mw.CreateFormFile("file", form.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, form.File); err != nil {
			return nil, "", fmt.Errorf("copy file: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

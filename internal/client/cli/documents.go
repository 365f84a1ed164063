package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/scholarhub/internal/client/endpoints"
	"github.com/dmitrijs2005/scholarhub/internal/client/models"
	"github.com/dmitrijs2005/scholarhub/internal/common"
	"github.com/dmitrijs2005/scholarhub/internal/formatx"
)

const titleWidth = 40

var errInvalidStatus = fmt.Errorf("status must be %q or %q", models.StatusDraft, models.StatusPublished)

// openFile is a test seam for reading upload files.
var openFile = func(name string) (io.ReadCloser, int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, st.Size(), nil
}

// createFile is a test seam for fetch destinations.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

var removeFile = os.Remove

// pageArg parses an optional 1-based page number.
func pageArg(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, usageError(usage)
	}
	return n, nil
}

// paginate returns the items of page (1-based) and the page count.
func paginate[T any](items []T, page, size int) ([]T, int) {
	pages := (len(items) + size - 1) / size
	start := (page - 1) * size
	if start >= len(items) {
		return nil, pages
	}
	end := min(start+size, len(items))
	return items[start:end], pages
}

func idArg(args []string, usage string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", usageError(usage)
	}
	return args[0], nil
}

// ListDocuments prints one page of documents as a table.
func (a *App) ListDocuments(ctx context.Context, args []string) error {
	page, err := pageArg(args, "docs [page]")
	if err != nil {
		return err
	}

	docs, err := a.documentService.GetAll(ctx)
	if err != nil {
		return err
	}
	if a.isAdmin() {
		a.Navigate(endpoints.RouteDocuments)
	} else {
		a.Navigate(endpoints.RouteBrowse)
	}

	if len(docs) == 0 {
		a.println("No documents")
		return nil
	}

	rows, pages := paginate(docs, page, common.DefaultPageSize)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCATEGORY\tSTATUS\tCREATED")
	for _, d := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID,
			formatx.Truncate(formatx.PlainText(d.Title), titleWidth),
			formatx.PlainText(d.Author),
			formatx.PlainText(d.Category),
			formatx.Label(d.Status),
			formatx.FormatDate(d.CreatedAt),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("Page %d of %d (%d documents)\n", page, pages, len(docs))
	return nil
}

// ShowDocument prints a single document.
func (a *App) ShowDocument(ctx context.Context, args []string) error {
	id, err := idArg(args, "doc <id>")
	if err != nil {
		return err
	}

	d, err := a.documentService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	a.printf("ID:       %s\n", d.ID)
	a.printf("Title:    %s\n", formatx.PlainText(d.Title))
	a.printf("Author:   %s\n", formatx.PlainText(d.Author))
	a.printf("Category: %s\n", formatx.PlainText(d.Category))
	a.printf("Status:   %s\n", formatx.Label(d.Status))
	a.printf("Created:  %s\n", formatx.FormatDateTime(d.CreatedAt))
	if d.FilePath != "" {
		a.printf("File:     %s\n", filepath.Base(d.FilePath))
	}
	return nil
}

// documentForm prompts for document fields, offering cur as defaults.
// An empty file path keeps the current file.
func (a *App) documentForm(cur models.Document, requireFile bool) (models.DocumentForm, io.Closer, error) {
	var form models.DocumentForm
	var err error

	fields := []struct {
		prompt string
		cur    string
		dst    *string
	}{
		{"Title", cur.Title, &form.Title},
		{"Author", cur.Author, &form.Author},
		{"Category", cur.Category, &form.Category},
	}
	for _, f := range fields {
		if *f.dst, err = getTextWithDefault(a.reader, f.prompt, f.cur, a.out); err != nil {
			return form, nil, err
		}
		if *f.dst == "" {
			return form, nil, fmt.Errorf("%s: %w", strings.ToLower(f.prompt), errEmptyField)
		}
	}

	status := cur.Status
	if status == "" {
		status = models.StatusDraft
	}
	if form.Status, err = getTextWithDefault(a.reader, "Status (draft/published)", status, a.out); err != nil {
		return form, nil, err
	}
	if form.Status != models.StatusDraft && form.Status != models.StatusPublished {
		return form, nil, errInvalidStatus
	}

	prompt := "File path (.pdf, .doc, .docx)"
	if !requireFile {
		prompt += ", empty keeps the current file"
	}
	path, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return form, nil, err
	}
	if path == "" {
		if requireFile {
			return form, nil, fmt.Errorf("file: %w", errEmptyField)
		}
		return form, nil, nil
	}

	if err := common.ValidateUpload(path, 0); err != nil {
		return form, nil, err
	}
	rc, size, err := openFile(path)
	if err != nil {
		return form, nil, err
	}
	if err := common.ValidateUpload(path, size); err != nil {
		rc.Close()
		return form, nil, err
	}
	form.File = rc
	form.FileName = filepath.Base(path)
	return form, rc, nil
}

// AddDocument uploads a new document.
func (a *App) AddDocument(ctx context.Context, _ []string) error {
	a.Navigate(endpoints.RouteDocumentsAdd)

	form, closer, err := a.documentForm(models.Document{}, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	d, err := a.documentService.Create(ctx, form)
	if err != nil {
		return err
	}

	a.Navigate(endpoints.RouteDocuments)
	a.printf("Document %s created\n", d.ID)
	return nil
}

// EditDocument updates a document, prompting with its current values.
func (a *App) EditDocument(ctx context.Context, args []string) error {
	id, err := idArg(args, "editdoc <id>")
	if err != nil {
		return err
	}

	cur, err := a.documentService.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Navigate(endpoints.RouteDocumentsEdit(id))

	form, closer, err := a.documentForm(*cur, false)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	if _, err := a.documentService.Update(ctx, id, form); err != nil {
		return err
	}

	a.Navigate(endpoints.RouteDocuments)
	a.printf("Document %s updated\n", id)
	return nil
}

func (a *App) confirm(prompt string) (bool, error) {
	s, err := getSimpleText(a.reader, prompt+" (y/N)", a.out)
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}

// DeleteDocument removes a document after confirmation.
func (a *App) DeleteDocument(ctx context.Context, args []string) error {
	id, err := idArg(args, "deldoc <id>")
	if err != nil {
		return err
	}

	ok, err := a.confirm(fmt.Sprintf("Delete document %s?", id))
	if err != nil || !ok {
		return err
	}

	resp, err := a.documentService.Delete(ctx, id)
	if err != nil {
		return err
	}
	if resp != nil && resp.Message != "" {
		a.println(formatx.PlainText(resp.Message))
	} else {
		a.printf("Document %s deleted\n", id)
	}
	return nil
}

// Pages lists the preview page names of a document.
func (a *App) Pages(ctx context.Context, args []string) error {
	id, err := idArg(args, "pages <id>")
	if err != nil {
		return err
	}

	pages, err := a.documentService.GetPages(ctx, id)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		a.println("No pages")
		return nil
	}
	for i, p := range pages {
		a.printf("%3d  %s\n", i+1, p)
	}
	return nil
}

// Preview prints the preview image URL of one page.
func (a *App) Preview(_ context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("preview <id> <page>")
	}
	a.println(a.documentService.GetPreviewURL(args[0], args[1]))
	return nil
}

// Download hands the document link to the opener.
func (a *App) Download(_ context.Context, args []string) error {
	id, err := idArg(args, "download <id>")
	if err != nil {
		return err
	}
	a.documentService.Download(id)
	return nil
}

// Fetch saves the document file locally. Without a file name the stored
// file name is used, falling back to the id.
func (a *App) Fetch(ctx context.Context, args []string) error {
	id, err := idArg(args, "fetch <id> [file]")
	if err != nil {
		return err
	}

	var name string
	if len(args) > 1 {
		name = args[1]
	} else {
		name = id
		if d, err := a.documentService.GetByID(ctx, id); err == nil && d.FilePath != "" {
			name = filepath.Base(d.FilePath)
		}
	}

	w, err := createFile(name)
	if err != nil {
		return err
	}

	n, err := a.documentService.Fetch(ctx, id, w)
	cerr := w.Close()
	if err = errors.Join(err, cerr); err != nil {
		if rerr := removeFile(name); rerr != nil {
			a.logger.Warn(ctx, "remove partial download", "file", name, "error", rerr)
		}
		return err
	}

	a.printf("Saved %s (%s)\n", name, formatx.FormatFileSize(n))
	return nil
}

// Copy puts a link on the clipboard: the download link of a document when
// an id is given, otherwise the web-app link of the current route.
func (a *App) Copy(ctx context.Context, args []string) error {
	var link string
	if len(args) > 0 {
		link = a.links.DocumentDownload(args[0])
	} else {
		link = endpoints.WebLink(a.config.AppURL, a.route)
	}

	if copyToClipboard(ctx, a.logger, link) {
		a.printf("Copied %s\n", link)
	} else {
		a.printf("Could not copy, link: %s\n", link)
	}
	return nil
}

// copyToClipboard is a test seam for formatx.CopyToClipboard.
var copyToClipboard = formatx.CopyToClipboard

// Package endpoints is the registry of ScholarHub API locations and web-app
// route paths.
//
// A Registry is built once from the API base URL and never changes. Fixed
// endpoints are plain methods; parameterized ones are RFC 6570 templates, so
// identifiers are percent-escaped on expansion. Every builder is pure.
package endpoints

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

var ErrInvalidBaseURL = errors.New("invalid API base URL")

const (
	pathAuthLogin    = "/api/auth/login"
	pathAuthRegister = "/api/auth/register"
	pathAuthMe       = "/api/auth/me"
	pathUsers        = "/api/users"
	pathDocuments    = "/api/documents"

	tmplUserByID         = "/api/users/{id}"
	tmplDocumentByID     = "/api/documents/{id}"
	tmplDocumentPages    = "/api/documents/pages/{id}"
	tmplDocumentDownload = "/download/{id}"
	tmplDocumentPreview  = "/preview/split/{id}/{page}"
)

var (
	userByID         = uritemplate.MustNew(tmplUserByID)
	documentByID     = uritemplate.MustNew(tmplDocumentByID)
	documentPages    = uritemplate.MustNew(tmplDocumentPages)
	documentDownload = uritemplate.MustNew(tmplDocumentDownload)
	documentPreview  = uritemplate.MustNew(tmplDocumentPreview)
)

type Registry struct {
	base string
}

// New validates baseURL (scheme and host are required) and returns a
// registry rooted at it. A trailing slash is dropped.
func New(baseURL string) (*Registry, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	return &Registry{base: strings.TrimRight(u.String(), "/")}, nil
}

// MustNew is New for static configuration; it panics on error.
func MustNew(baseURL string) *Registry {
	r, err := New(baseURL)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) BaseURL() string { return r.base }

func (r *Registry) AuthLogin() string    { return r.base + pathAuthLogin }
func (r *Registry) AuthRegister() string { return r.base + pathAuthRegister }
func (r *Registry) AuthMe() string       { return r.base + pathAuthMe }
func (r *Registry) Users() string        { return r.base + pathUsers }
func (r *Registry) Documents() string    { return r.base + pathDocuments }

func (r *Registry) UserByID(id string) string {
	return r.base + expand(userByID, "id", id)
}

func (r *Registry) DocumentByID(id string) string {
	return r.base + expand(documentByID, "id", id)
}

func (r *Registry) DocumentPages(id string) string {
	return r.base + expand(documentPages, "id", id)
}

func (r *Registry) DocumentDownload(id string) string {
	return r.base + expand(documentDownload, "id", id)
}

func (r *Registry) DocumentPreview(id, page string) string {
	return r.base + expand(documentPreview, "id", id, "page", page)
}

// expand fills tmpl with name/value pairs. String values cannot fail to
// expand, so the error is dropped.
func expand(tmpl *uritemplate.Template, pairs ...string) string {
	vals := uritemplate.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		vals.Set(pairs[i], uritemplate.String(pairs[i+1]))
	}
	s, _ := tmpl.Expand(vals)
	return s
}

package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/dmitrijs2005/scholarhub/internal/client/config"
	"github.com/dmitrijs2005/scholarhub/internal/client/endpoints"
	"github.com/dmitrijs2005/scholarhub/internal/client/models"
	"github.com/dmitrijs2005/scholarhub/internal/client/repositories/kv"
	"github.com/dmitrijs2005/scholarhub/internal/client/session"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
)

type fakeAuth struct {
	user     *models.Profile
	loginErr error
	meErr    error

	loginEmail, loginPass      string
	regName, regEmail, regPass string
	meCalls, logoutCalls       int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.AuthResponse, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.user = &models.Profile{ID: "1", Email: email, Role: models.RoleUser}
	return &models.AuthResponse{Token: "tok", User: *f.user}, nil
}

func (f *fakeAuth) Register(_ context.Context, name, email, password string) (*models.AuthResponse, error) {
	f.regName, f.regEmail, f.regPass = name, email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.user = &models.Profile{ID: "2", Name: name, Email: email, Role: models.RoleUser}
	return &models.AuthResponse{Token: "tok", User: *f.user}, nil
}

func (f *fakeAuth) GetMe(context.Context) (*models.Profile, error) {
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalls++
	f.user = nil
}

func (f *fakeAuth) IsAuthenticated() bool { return f.user != nil }
func (f *fakeAuth) IsAdmin() bool         { return f.user.IsAdmin() }
func (f *fakeAuth) CurrentUser() (*models.Profile, bool) {
	return f.user, f.user != nil
}

type fakeDocs struct {
	docs    []models.Document
	err     error
	pages   []string
	content string

	created, updated []models.DocumentForm
	uploaded         []string
	deleted          []string
	downloaded       []string
}

func (f *fakeDocs) GetAll(context.Context) ([]models.Document, error) { return f.docs, f.err }

func (f *fakeDocs) GetByID(_ context.Context, id string) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.docs {
		if d.ID.String() == id {
			return &d, nil
		}
	}
	return nil, io.ErrUnexpectedEOF
}

func (f *fakeDocs) readFile(form models.DocumentForm) {
	if form.File == nil {
		return
	}
	b, _ := io.ReadAll(form.File)
	f.uploaded = append(f.uploaded, string(b))
}

func (f *fakeDocs) Create(_ context.Context, form models.DocumentForm) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.readFile(form)
	f.created = append(f.created, form)
	return &models.Document{ID: "99", Title: form.Title}, nil
}

func (f *fakeDocs) Update(_ context.Context, id string, form models.DocumentForm) (*models.Document, error) {
	f.readFile(form)
	f.updated = append(f.updated, form)
	return &models.Document{ID: models.ID(id), Title: form.Title}, nil
}

func (f *fakeDocs) Delete(_ context.Context, id string) (*models.MessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, id)
	return &models.MessageResponse{Message: "Document deleted successfully"}, nil
}

func (f *fakeDocs) Download(id string) { f.downloaded = append(f.downloaded, id) }

func (f *fakeDocs) Fetch(_ context.Context, _ string, w io.Writer) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := io.WriteString(w, f.content)
	return int64(n), err
}

func (f *fakeDocs) GetPages(context.Context, string) ([]string, error) { return f.pages, f.err }

func (f *fakeDocs) GetPreviewURL(id, page string) string {
	return endpoints.MustNew("http://api.test").DocumentPreview(id, page)
}

type fakeUsers struct {
	users   []models.Profile
	err     error
	created []models.UserInput
	updated []models.UserInput
	deleted []string
}

func (f *fakeUsers) List(context.Context) ([]models.Profile, error) { return f.users, f.err }

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID.String() == id {
			return &u, nil
		}
	}
	return nil, io.ErrUnexpectedEOF
}

func (f *fakeUsers) Create(_ context.Context, in models.UserInput) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &models.Profile{ID: "7", Name: in.Name, Email: in.Email, Role: in.Role}, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, in models.UserInput) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, in)
	return &models.Profile{ID: models.ID(id)}, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) (*models.MessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, id)
	return &models.MessageResponse{}, nil
}

type testApp struct {
	*App
	auth  *fakeAuth
	docs  *fakeDocs
	users *fakeUsers
	out   *bytes.Buffer
}

// newTestApp builds an App over fakes; input feeds the prompts.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	out := &bytes.Buffer{}
	ta := &testApp{auth: &fakeAuth{}, docs: &fakeDocs{}, users: &fakeUsers{}, out: out}
	ta.App = &App{
		config:          &config.Config{AppURL: "http://web.test"},
		authService:     ta.auth,
		documentService: ta.docs,
		userService:     ta.users,
		store:           session.New(kv.NewMemoryRepository(), logging.Discard()),
		links:           endpoints.MustNew("http://api.test"),
		logger:          logging.Discard(),
		reader:          rdr(input),
		out:             out,
		route:           endpoints.RouteHome,
	}
	return ta
}

func (ta *testApp) asAdmin() *testApp {
	ta.auth.user = &models.Profile{ID: "1", Name: "Admin", Email: "admin@kampus.ac.id", Role: models.RoleAdmin}
	return ta
}

func (ta *testApp) asUser() *testApp {
	ta.auth.user = &models.Profile{ID: "5", Name: "Siti", Email: "siti@kampus.ac.id", Role: models.RoleUser}
	return ta
}

// stubPasswords makes getPassword return pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(string, io.Writer) (string, error) {
		if len(pws) == 0 {
			return "", io.EOF
		}
		pw := pws[0]
		pws = pws[1:]
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

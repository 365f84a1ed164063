package services

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/scholarhub/internal/client/apiclient"
	"github.com/dmitrijs2005/scholarhub/internal/client/endpoints"
	"github.com/dmitrijs2005/scholarhub/internal/client/metrics"
	"github.com/dmitrijs2005/scholarhub/internal/client/repositories/kv"
	"github.com/dmitrijs2005/scholarhub/internal/client/session"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// mockAPI is an httptest server routed with chi that records every hit.
type mockAPI struct {
	Router *chi.Mux
	Server *httptest.Server

	mu   sync.Mutex
	hits []*http.Request
}

func newMockAPI(t *testing.T) *mockAPI {
	t.Helper()
	m := &mockAPI{Router: chi.NewRouter()}
	m.Router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.mu.Lock()
			m.hits = append(m.hits, r.Clone(r.Context()))
			m.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})
	m.Server = httptest.NewServer(m.Router)
	t.Cleanup(m.Server.Close)
	return m
}

func (m *mockAPI) Hits() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.hits...)
}

type fixture struct {
	api      *mockAPI
	client   *apiclient.Client
	store    *session.Store
	registry *prometheus.Registry
	routes   []string
	opened   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{api: newMockAPI(t), registry: prometheus.NewRegistry()}
	collector := metrics.NewCollector(f.registry)
	f.client = apiclient.New(f.api.Server.Client(), endpoints.MustNew(f.api.Server.URL), logging.Discard(), collector)
	f.store = session.New(kv.NewMemoryRepository(), logging.Discard(), session.WithRecorder(collector))
	return f
}

func (f *fixture) auth(expireOnNetworkError bool) AuthService {
	nav := NavigatorFunc(func(route string) { f.routes = append(f.routes, route) })
	return NewAuthService(f.client, f.store, nav, logging.Discard(), expireOnNetworkError)
}

func (f *fixture) documents() DocumentService {
	opener := OpenerFunc(func(url string) { f.opened = append(f.opened, url) })
	return NewDocumentService(f.client, opener, logging.Discard())
}

func (f *fixture) users() UserService {
	return NewUserService(f.client, f.store, logging.Discard())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

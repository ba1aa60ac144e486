package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
	"github.com/shandysiswandi/gotp/internal/social/entity"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type fakeCache struct {
	mu     sync.Mutex
	states map[string]string
	tokens map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{states: make(map[string]string), tokens: make(map[string][]byte)}
}

func (f *fakeCache) SaveState(_ context.Context, state, provider string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[state] = provider
	return nil
}

func (f *fakeCache) TakeState(_ context.Context, state string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	provider, ok := f.states[state]
	if !ok {
		return "", goerror.ErrNotFound
	}
	delete(f.states, state)
	return provider, nil
}

func (f *fakeCache) SaveProviderToken(_ context.Context, _ int64, provider string, token []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[provider] = token
	return nil
}

type fakeDB struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
}

func (f *fakeDB) UpsertUserByEmail(_ context.Context, id int64, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	u := &entity.User{ID: id, Email: email}
	f.byEmail[email] = u
	return u, nil
}

type fakeMsg struct {
	mu     sync.Mutex
	logins []UserLoginEvent
}

func (f *fakeMsg) PublishUserLogin(_ context.Context, msg UserLoginEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, msg)
	return nil
}

// passGuard runs the function directly and records keys, so replays within
// one test are visible.
type passGuard struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (g *passGuard) Do(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	g.mu.Lock()
	g.keys = append(g.keys, key)
	err := g.err
	g.mu.Unlock()

	if err != nil {
		return err
	}
	return fn(ctx)
}

type fakeJWT struct {
	token string
}

func (f *fakeJWT) Generate(int64, string) (string, error) {
	return f.token, nil
}

func (f *fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, errors.New("not implemented")
}

type seqUUID struct {
	mu   sync.Mutex
	next int
}

func (s *seqUUID) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return "state-" + string(rune('a'+s.next-1))
}

type seqUID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqUID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetMinute(string) time.Duration {
	return 10 * time.Minute
}

func (fakeConfig) GetHour(string) time.Duration {
	return time.Hour
}

// newProviderServer fakes the provider's token and userinfo endpoints.
func newProviderServer(t *testing.T, email string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    12345,
			"email": email,
			"name":  "Test User",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testProvider(srv *httptest.Server) *Provider {
	return &Provider{
		id: entity.ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost/callback",
			Scopes:       []string{"email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/auth",
				TokenURL: srv.URL + "/token",
			},
		},
		userInfoURL: srv.URL + "/userinfo",
	}
}

type fixture struct {
	uc    *Usecase
	cache *fakeCache
	db    *fakeDB
	msg   *fakeMsg
	guard *passGuard
	mgr   *goroutine.Manager
}

func newFixture(t *testing.T, p *Provider) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cache := newFakeCache()
	db := &fakeDB{byEmail: make(map[string]*entity.User)}
	msg := &fakeMsg{}
	guard := &passGuard{}
	mgr := goroutine.NewManager(4)

	uc := New(Dependency{
		Providers:   []*Provider{p},
		RepoDB:      db,
		RepoCache:   cache,
		RepoMsg:     msg,
		Idempotency: guard,
		Validator:   v,
		Config:      fakeConfig{},
		UUID:        &seqUUID{},
		UID:         &seqUID{},
		Clock:       &fakeClock{now: time.Unix(1_700_000_000, 0)},
		JWT:         &fakeJWT{token: "signed-token"},
		Instrument:  instrument.NewNoop(),
		Goroutine:   mgr,
	})

	return &fixture{uc: uc, cache: cache, db: db, msg: msg, guard: guard, mgr: mgr}
}

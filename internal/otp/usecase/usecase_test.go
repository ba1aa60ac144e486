package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/shandysiswandi/gotp/internal/pkg/mail"
	"github.com/shandysiswandi/gotp/internal/pkg/mfa"
	"github.com/shandysiswandi/gotp/internal/pkg/smsgateway"
	"github.com/shandysiswandi/gotp/internal/pkg/totp"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	mu      sync.Mutex
	byPhone map[string]*entity.User
	byEmail map[string]*entity.User
	byID    map[int64]*entity.User
	apiKeys map[string]*entity.APIKey

	savedSecrets map[int64][]byte
	touchedKeys  []int64
	upsertErr    error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		byPhone:      make(map[string]*entity.User),
		byEmail:      make(map[string]*entity.User),
		byID:         make(map[int64]*entity.User),
		apiKeys:      make(map[string]*entity.APIKey),
		savedSecrets: make(map[int64][]byte),
	}
}

func (f *fakeDB) addUser(u *entity.User) {
	f.byID[u.ID] = u
	if u.Phone != "" {
		f.byPhone[u.Phone] = u
	}
	if u.Email != "" {
		f.byEmail[u.Email] = u
	}
}

func (f *fakeDB) GetUserByPhone(_ context.Context, phone string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byPhone[phone]; ok {
		return u, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) UpsertUserByPhone(_ context.Context, id int64, phone string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if u, ok := f.byPhone[phone]; ok {
		return u, nil
	}
	u := &entity.User{ID: id, Phone: phone, Status: entity.UserStatusActive}
	f.byPhone[phone] = u
	f.byID[id] = u
	return u, nil
}

func (f *fakeDB) UpsertUserByEmail(_ context.Context, id int64, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	u := &entity.User{ID: id, Email: email, Status: entity.UserStatusActive}
	f.byEmail[email] = u
	f.byID[id] = u
	return u, nil
}

func (f *fakeDB) SaveUserTOTPSecret(_ context.Context, userID int64, secret []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[userID]; !ok {
		return goerror.ErrNotFound
	}
	f.savedSecrets[userID] = secret
	return nil
}

func (f *fakeDB) GetAPIKeyByPublicKey(_ context.Context, publicKey string) (*entity.APIKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if k, ok := f.apiKeys[publicKey]; ok {
		return k, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) TouchAPIKeyLastUsed(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touchedKeys = append(f.touchedKeys, id)
	return nil
}

type fakeMsg struct {
	mu     sync.Mutex
	sent   []OTPSentEvent
	logins []UserLoginEvent
}

func (f *fakeMsg) PublishOTPSent(_ context.Context, msg OTPSentEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMsg) PublishUserLogin(_ context.Context, msg UserLoginEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, msg)
	return nil
}

type fakeSender struct {
	mu     sync.Mutex
	phones []string
	codes  []string
	err    error
}

func (f *fakeSender) SendOTP(_ context.Context, phone, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.phones = append(f.phones, phone)
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeSender) RenderMessage(code string) string {
	return "Your verification code is " + code
}

func (f *fakeSender) Available() []smsgateway.Descriptor {
	return []smsgateway.Descriptor{{ID: "kavenegar", Name: "Kavenegar"}, {ID: "smsir", Name: "SMS.ir"}}
}

func (f *fakeSender) ActiveIDs() (string, string) {
	return "kavenegar", "smsir"
}

type fakeMailer struct {
	mu   sync.Mutex
	msgs []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeMailer) Close() error {
	return nil
}

type fakeJWT struct {
	token string
	err   error
}

func (f *fakeJWT) Generate(int64, string) (string, error) {
	return f.token, f.err
}

func (f *fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, errors.New("not implemented")
}

// fakeConfig answers duration lookups and delegates nothing else; tests only
// exercise keys listed here.
type fakeConfig struct {
	config.Config
	minutes map[string]time.Duration
}

func (f *fakeConfig) GetMinute(key string) time.Duration {
	return f.minutes[key]
}

type fixture struct {
	uc     *Usecase
	clk    *fakeClock
	cache  *memCache
	db     *fakeDB
	msg    *fakeMsg
	sender *fakeSender
	mailer *fakeMailer
	mgr    *goroutine.Manager
	totp   totp.OTP
	mfa    mfa.Encryptor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	cache := newMemCache(clk)
	db := newFakeDB()
	msg := &fakeMsg{}
	sender := &fakeSender{}
	mailer := &fakeMailer{}
	mgr := goroutine.NewManager(4)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	key := make([]byte, 32)
	copy(key, "0123456789abcdef0123456789abcdef")
	enc := mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: key})

	totpGen := totp.NewTOTP("gotp-test", 30, 1, 6)

	engine := NewEngine(cache, hash.NewHMACSHA256("usecase-test-secret"), &fakeCodes{codes: []string{"123456"}}, clk, 5*time.Minute, time.Minute)

	uc := New(Dependency{
		Engine:       engine,
		RepoDB:       db,
		RepoCache:    cache,
		RepoMsg:      msg,
		Gateways:     sender,
		Mailer:       mailer,
		Validator:    v,
		Config:       &fakeConfig{minutes: map[string]time.Duration{"modules.otp.totp_pending_ttl_minutes": 10 * time.Minute}},
		Argon2ID:     hash.NewArgon2id("usecase-test-pepper"),
		MFAEncryptor: enc,
		UID:          &fakeUID{next: 1000},
		Totp:         totpGen,
		Clock:        clk,
		JWT:          &fakeJWT{token: "signed-token"},
		Instrument:   instrument.NewNoop(),
		Goroutine:    mgr,
	})

	return &fixture{
		uc:     uc,
		clk:    clk,
		cache:  cache,
		db:     db,
		msg:    msg,
		sender: sender,
		mailer: mailer,
		mgr:    mgr,
		totp:   totpGen,
		mfa:    enc,
	}
}

type fakeUID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeUID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

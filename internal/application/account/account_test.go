package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/cipher"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

const testCipherKey = "ZGV2LW9ubHktY2lwaGVyLWtleS0zMi1ieXRlcy1sb24="

// fakeSessionStore 内存会话存储
type fakeSessionStore struct {
	mu        sync.Mutex
	sessions  map[uint]map[string]interface{}
	blacklist map[string]time.Duration
	saveErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions:  map[uint]map[string]interface{}{},
		blacklist: map[string]time.Duration{},
	}
}

func (f *fakeSessionStore) SaveSession(ctx context.Context, accountID uint, data map[string]interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sessions[accountID] = data
	return nil
}

func (f *fakeSessionStore) DeleteSession(ctx context.Context, accountID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, accountID)
	return nil
}

func (f *fakeSessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blacklist[token] = ttl
	return nil
}

type fixture struct {
	service  account.Service
	jwt      *jwt.Manager
	sessions *fakeSessionStore
	register *RegisterUseCase
	login    *LoginUseCase
	logout   *LogoutUseCase
	refresh  *RefreshTokenUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := mysql.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.Migrate(db))

	c, err := cipher.New(testCipherKey)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := account.NewService(mysql.NewAccountRepository(db), c)
	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	sessions := newFakeSessionStore()

	return &fixture{
		service:  service,
		jwt:      manager,
		sessions: sessions,
		register: NewRegisterUseCase(service, logger),
		login:    NewLoginUseCase(service, manager, sessions, 24*time.Hour, logger),
		logout:   NewLogoutUseCase(manager, sessions),
		refresh:  NewRefreshTokenUseCase(service, manager),
	}
}

func TestRegisterAndLogin_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	info, err := f.register.Execute(ctx, RegisterRequest{Email: "a@b.com", Password: "abcd1234"})
	require.NoError(t, err)
	assert.NotZero(t, info.ID)
	assert.Equal(t, "a@b.com", info.Email)

	_, err = f.register.Execute(ctx, RegisterRequest{Email: "a@b.com", Password: "abcd1234"})
	assert.ErrorIs(t, err, account.ErrEmailAlreadyExists)

	_, err = f.login.Execute(ctx, LoginRequest{Email: "a@b.com", Password: "wrong9999"})
	assert.ErrorIs(t, err, account.ErrIncorrectCredentials)

	_, err = f.login.Execute(ctx, LoginRequest{Email: "nobody@b.com", Password: "abcd1234"})
	assert.ErrorIs(t, err, account.ErrEmailNotFound)

	resp, err := f.login.Execute(ctx, LoginRequest{Email: " a@b.com ", Password: "abcd1234", ClientIP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, info.ID, resp.Account.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := f.jwt.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.AccountID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Contains(t, f.sessions.sessions, info.ID)
}

func TestRegister_StoresReversibleCiphertext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	info, err := f.register.Execute(ctx, RegisterRequest{Email: "c@d.org", Password: "secret123"})
	require.NoError(t, err)

	acc, err := f.service.Resolve(ctx, info.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", acc.Password)

	c, err := cipher.New(testCipherKey)
	require.NoError(t, err)
	plain, err := c.Decrypt(acc.Password)
	require.NoError(t, err)
	assert.Equal(t, "secret123", plain)
}

func TestRegister_ReportsEveryViolation(t *testing.T) {
	f := newFixture(t)

	_, err := f.register.Execute(context.Background(), RegisterRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)

	rules := map[string][]string{}
	for _, fe := range appErr.Fields {
		rules[fe.Field] = append(rules[fe.Field], fe.Rule)
	}
	assert.Equal(t, []string{"email_format"}, rules["email"])
	assert.ElementsMatch(t, []string{"min", "password_strength"}, rules["password"])
}

func TestLogin_SessionFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.register.Execute(ctx, RegisterRequest{Email: "s@e.io", Password: "pass1234"})
	require.NoError(t, err)

	f.sessions.saveErr = errors.New("redis down")
	resp, err := f.login.Execute(ctx, LoginRequest{Email: "s@e.io", Password: "pass1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogoutAndRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.register.Execute(ctx, RegisterRequest{Email: "l@o.net", Password: "logout12"})
	require.NoError(t, err)
	resp, err := f.login.Execute(ctx, LoginRequest{Email: "l@o.net", Password: "logout12"})
	require.NoError(t, err)

	refreshed, err := f.refresh.Execute(ctx, RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access Token不能当Refresh Token用
	_, err = f.refresh.Execute(ctx, RefreshTokenRequest{RefreshToken: resp.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	acc, err := f.service.Resolve(ctx, resp.Account.ID)
	require.NoError(t, err)
	require.NoError(t, f.logout.Execute(ctx, acc, resp.AccessToken))

	ttl, ok := f.sessions.blacklist[resp.AccessToken]
	require.True(t, ok)
	assert.Greater(t, ttl, 59*time.Minute)
	assert.NotContains(t, f.sessions.sessions, acc.ID)

	assert.ErrorIs(t, f.logout.Execute(ctx, nil, resp.AccessToken), apperrors.ErrUnauthenticated)
}

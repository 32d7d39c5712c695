package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo 内存仓储
type memRepo struct {
	byEmail map[string]*Account
	nextID  uint
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: map[string]*Account{}}
}

func (r *memRepo) Create(ctx context.Context, a *Account) error {
	if _, ok := r.byEmail[a.Email]; ok {
		return ErrEmailAlreadyExists
	}
	r.nextID++
	a.ID = r.nextID
	r.byEmail[a.Email] = a
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id uint) (*Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *memRepo) FindByEmail(ctx context.Context, email string) (*Account, error) {
	if a, ok := r.byEmail[email]; ok {
		return a, nil
	}
	return nil, ErrEmailNotFound
}

func (r *memRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

// reverseCipher 把明文反转当作密文
type reverseCipher struct{ fail bool }

func (c reverseCipher) Encrypt(plaintext string) (string, error) {
	if c.fail {
		return "", errors.New("boom")
	}
	return reverse(plaintext), nil
}

func (c reverseCipher) Matches(ciphertext, plaintext string) bool {
	return reverse(ciphertext) == plaintext
}

func reverse(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i := len(r) - 1; i >= 0; i-- {
		b.WriteRune(r[i])
	}
	return b.String()
}

func TestService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), reverseCipher{})

	acc, err := svc.Register(ctx, "a@b.com", "Passw0rd!")
	require.NoError(t, err)
	assert.NotZero(t, acc.ID)
	assert.NotEqual(t, "Passw0rd!", acc.Password)

	_, err = svc.Register(ctx, "a@b.com", "Other0rd!")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	got, err := svc.Authenticate(ctx, "a@b.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = svc.Authenticate(ctx, "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectCredentials)

	// 邮箱区分大小写
	_, err = svc.Authenticate(ctx, "A@b.com", "Passw0rd!")
	assert.ErrorIs(t, err, ErrEmailNotFound)

	resolved, err := svc.Resolve(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", resolved.Email)

	_, err = svc.Resolve(ctx, 99)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestService_RegisterCipherFailure(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, reverseCipher{fail: true})

	_, err := svc.Register(context.Background(), "a@b.com", "Passw0rd!")
	require.Error(t, err)
	assert.Empty(t, repo.byEmail)
}

package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email_format"`
	Password string `json:"password" validate:"required,min=8,max=50,password_strength"`
}

func rulesOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.Equal(t, apperrors.KindValidation, appErr.Kind)

	out := make(map[string][]string)
	for _, f := range appErr.Fields {
		out[f.Field] = append(out[f.Field], f.Rule)
	}
	return out
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(&credentials{Email: "a@b.com", Password: "abcd1234"}))
	assert.NoError(t, Struct(&credentials{Email: "first.last@mail.example.org", Password: "Passw0rd"}))
}

func TestStruct_EmailFormat(t *testing.T) {
	bad := []string{"abc", "a@b", "a@b.c", "@b.com", "a b@c.com", "a@@b.com"}
	for _, email := range bad {
		t.Run(email, func(t *testing.T) {
			rules := rulesOf(t, Struct(&credentials{Email: email, Password: "abcd1234"}))
			assert.Equal(t, []string{"email_format"}, rules["email"])
		})
	}
}

func TestStruct_ReportsEveryViolatedRule(t *testing.T) {
	t.Run("短且没有数字", func(t *testing.T) {
		rules := rulesOf(t, Struct(&credentials{Email: "a@b.com", Password: "abc"}))
		assert.ElementsMatch(t, []string{"min", "password_strength"}, rules["password"])
	})

	t.Run("过长且没有字母", func(t *testing.T) {
		rules := rulesOf(t, Struct(&credentials{Email: "a@b.com", Password: strings.Repeat("1", 51)}))
		assert.ElementsMatch(t, []string{"max", "password_strength"}, rules["password"])
	})

	t.Run("多个字段同时失败", func(t *testing.T) {
		rules := rulesOf(t, Struct(&credentials{Email: "nope", Password: "12345678"}))
		assert.Equal(t, []string{"email_format"}, rules["email"])
		assert.Equal(t, []string{"password_strength"}, rules["password"])
	})

	t.Run("required失败后不再报其他规则", func(t *testing.T) {
		rules := rulesOf(t, Struct(&credentials{}))
		assert.Equal(t, []string{"required"}, rules["email"])
		assert.Equal(t, []string{"required"}, rules["password"])
	})
}

func TestTrimStrings(t *testing.T) {
	in := credentials{Email: "  a@b.com\n", Password: " abcd1234 "}
	TrimStrings(&in)
	assert.Equal(t, "a@b.com", in.Email)
	assert.Equal(t, "abcd1234", in.Password)
	assert.NoError(t, Struct(&in))
}

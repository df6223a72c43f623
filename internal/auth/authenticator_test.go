package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prekeyd/internal/mocks"
	"prekeyd/internal/model"
	"prekeyd/internal/testutil"
)

func testAccount(number, password string) model.Account {
	salt := []byte("0123456789abcdef")
	return model.Account{
		Number:   number,
		AuthSalt: salt,
		AuthHash: HashSecret(password, salt),
	}
}

func TestBase_Authenticate_Success(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	account := testAccount("+14152222222", "validpassword")
	accounts.On("GetByNumber", mock.Anything, "+14152222222").Return(account, nil)

	a := NewBase(accounts, testutil.MakeNoopLogger())

	resolved, err := a.Authenticate(ctx, model.Credentials{Number: "+14152222222", Password: "validpassword"})
	require.NoError(t, err)
	assert.Equal(t, "+14152222222", resolved.Number)
}

func TestBase_Authenticate_WrongPassword(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	accounts.On("GetByNumber", mock.Anything, "+14152222222").Return(testAccount("+14152222222", "validpassword"), nil)

	a := NewBase(accounts, testutil.MakeNoopLogger())

	_, err := a.Authenticate(ctx, model.Credentials{Number: "+14152222222", Password: "wrongpassword"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestBase_Authenticate_UnknownNumber(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	accounts.On("GetByNumber", mock.Anything, "+14152222220").Return(model.Account{}, model.ErrNotFound)

	a := NewBase(accounts, testutil.MakeNoopLogger())

	_, err := a.Authenticate(ctx, model.Credentials{Number: "+14152222220", Password: "whatever"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestBase_Authenticate_MissingCredential(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}

	a := NewBase(accounts, testutil.MakeNoopLogger())

	_, err := a.Authenticate(ctx, model.Credentials{})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
	accounts.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
}

func TestBase_Authenticate_StoreFaultPropagates(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	storeErr := errors.New("connection refused")
	accounts.On("GetByNumber", mock.Anything, "+14152222222").Return(model.Account{}, storeErr)

	a := NewBase(accounts, testutil.MakeNoopLogger())

	_, err := a.Authenticate(ctx, model.Credentials{Number: "+14152222222", Password: "validpassword"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrUnauthorized)
}

func TestParseBasicHeader(t *testing.T) {
	creds, err := ParseBasicHeader(BasicHeader("+14152222222", "secret"))
	require.NoError(t, err)
	assert.Equal(t, "+14152222222", creds.Number)
	assert.Equal(t, "secret", creds.Password)
}

func TestParseBasicHeader_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "not basic", value: "Bearer abc"},
		{name: "bad base64", value: "Basic !!!"},
		{name: "no separator", value: "Basic " + "bm9zZXBhcmF0b3I="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBasicHeader(tt.value)
			assert.Error(t, err)
		})
	}
}

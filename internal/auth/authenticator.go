// Package auth validates caller credentials against stored account records.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/argon2"

	"prekeyd/internal/logger"
	"prekeyd/internal/model"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// dummySalt keeps the unknown-account path doing the same KDF work as the
// known-account path.
var dummySalt = make([]byte, 16)

// HashSecret derives the stored verifier for a secret. The upload/registration
// collaborator uses the same derivation when provisioning accounts.
func HashSecret(secret string, salt []byte) []byte {
	return argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

var _ model.Authenticator = (*Base)(nil)

// Base resolves a credential pair against the account store. Every failure
// collapses to model.ErrUnauthorized: the caller learns nothing about which
// check failed.
type Base struct {
	accounts model.AccountStore
	logger   *logger.Logger
}

func NewBase(accounts model.AccountStore, logger *logger.Logger) *Base {
	return &Base{
		accounts: accounts,
		logger:   logger,
	}
}

// Authenticate resolves creds to an account. Credential failures return
// model.ErrUnauthorized; store faults propagate as-is.
func (a *Base) Authenticate(ctx context.Context, creds model.Credentials) (model.Account, error) {
	if creds.Number == "" || creds.Password == "" {
		return model.Account{}, model.ErrUnauthorized
	}

	account, err := a.accounts.GetByNumber(ctx, creds.Number)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// burn the derivation anyway so unknown numbers are not
			// distinguishable by timing
			HashSecret(creds.Password, dummySalt)
			return model.Account{}, model.ErrUnauthorized
		}
		return model.Account{}, err
	}

	computed := HashSecret(creds.Password, account.AuthSalt)
	if subtle.ConstantTimeCompare(computed, account.AuthHash) != 1 {
		a.logger.Debug("Authenticator: credential rejected", "number", creds.Number)
		return model.Account{}, model.ErrUnauthorized
	}

	return account, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"prekeyd/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (model.Account, error) {
	var account model.Account
	query := `SELECT id, number, auth_hash, auth_salt, created_at
			  FROM accounts WHERE number = $1`

	err := r.db.QueryRow(ctx, query, number).Scan(
		&account.ID, &account.Number, &account.AuthHash, &account.AuthSalt, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by number: %w", err)
	}

	return account, nil
}

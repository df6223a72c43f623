package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"prekeyd/internal/model"
)

var _ model.KeyStore = (*KeyRepository)(nil)

type KeyRepository struct {
	db *Connection
}

func NewKeyRepository(db *Connection) *KeyRepository {
	return &KeyRepository{
		db: db,
	}
}

// GetByNumberAndDevice returns the current key for one device. When several
// keys are provisioned the lowest key id is the current one.
func (r *KeyRepository) GetByNumberAndDevice(ctx context.Context, number string, deviceID int64) (model.PreKey, error) {
	var key model.PreKey
	query := `SELECT id, number, device_id, registration_id, key_id, public_key, identity_key, last_resort
			  FROM keys WHERE number = $1 AND device_id = $2
			  ORDER BY key_id LIMIT 1`

	err := r.db.QueryRow(ctx, query, number, deviceID).Scan(
		&key.ID, &key.Number, &key.DeviceID, &key.RegistrationID,
		&key.KeyID, &key.PublicKey, &key.IdentityKey, &key.LastResort,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PreKey{}, model.ErrNotFound
		}
		return model.PreKey{}, fmt.Errorf("failed to get key by number and device: %w", err)
	}

	return key, nil
}

// GetByNumber returns the current key of every device of the account in one
// query, ordered by device id so the master device comes first.
func (r *KeyRepository) GetByNumber(ctx context.Context, number string) ([]model.PreKey, error) {
	query := `SELECT DISTINCT ON (device_id)
			  id, number, device_id, registration_id, key_id, public_key, identity_key, last_resort
			  FROM keys WHERE number = $1
			  ORDER BY device_id, key_id`

	rows, err := r.db.Query(ctx, query, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get keys by number: %w", err)
	}
	defer rows.Close()

	var keys []model.PreKey
	for rows.Next() {
		var key model.PreKey
		if err := rows.Scan(
			&key.ID, &key.Number, &key.DeviceID, &key.RegistrationID,
			&key.KeyID, &key.PublicKey, &key.IdentityKey, &key.LastResort,
		); err != nil {
			return nil, fmt.Errorf("failed to scan key row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read key rows: %w", err)
	}

	if len(keys) == 0 {
		return nil, model.ErrNotFound
	}

	return keys, nil
}

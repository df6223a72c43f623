package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MasterDeviceID is the device id of an account's primary device.
const MasterDeviceID int64 = 1

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByNumber(ctx context.Context, number string) (Account, error)
}

// Account represents a registered account with authentication material.
type Account struct {
	ID        uuid.UUID
	Number    string
	AuthHash  []byte
	AuthSalt  []byte
	CreatedAt time.Time
}

// Device is one registered client instance under an account. The master
// device (id 1) always exists once the account is registered.
type Device struct {
	Number         string
	DeviceID       int64
	RegistrationID int64
	CreatedAt      time.Time
}

// Credentials is a decoded (identifier, secret) pair supplied with a request.
type Credentials struct {
	Number   string
	Password string
}

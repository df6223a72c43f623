package model

import (
	"context"

	"github.com/google/uuid"
)

// KeyStore defines read-only lookups over provisioned prekeys. Both lookups
// report ErrNotFound uniformly: an unknown account, an unknown device and a
// device with no provisioned key are indistinguishable to callers.
type KeyStore interface {
	GetByNumberAndDevice(ctx context.Context, number string, deviceID int64) (PreKey, error)
	GetByNumber(ctx context.Context, number string) ([]PreKey, error)
}

// PreKey is a unit of public key material scoped to one device. The account
// number, device id and registration counter are never serialized; responses
// carry only the key id, the key material and the exhaustion flag.
type PreKey struct {
	ID             uuid.UUID `json:"-"`
	Number         string    `json:"-"`
	DeviceID       int64     `json:"-"`
	RegistrationID int64     `json:"-"`
	KeyID          int64     `json:"keyId"`
	PublicKey      string    `json:"publicKey"`
	IdentityKey    string    `json:"identityKey"`
	LastResort     bool      `json:"lastResort"`
}

// PreKeyBundleList wraps per-device prekeys so the count is discoverable
// without counting elements in transit.
type PreKeyBundleList struct {
	Count int      `json:"count"`
	Keys  []PreKey `json:"keys"`
}

// NewPreKeyBundleList wraps keys in a counted bundle list.
func NewPreKeyBundleList(keys []PreKey) PreKeyBundleList {
	return PreKeyBundleList{Count: len(keys), Keys: keys}
}

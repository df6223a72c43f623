package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyRepository(t *testing.T) {
	db := &Connection{}
	repo := NewKeyRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewAccountRepository(t *testing.T) {
	db := &Connection{}
	repo := NewAccountRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

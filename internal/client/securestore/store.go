// Package securestore is the device-local credential store. Values are
// sealed with AES-256-GCM before they reach the SQLite metadata table.
package securestore

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dysh/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dysh/internal/common"
	"github.com/dmitrijs2005/dysh/internal/cryptox"
	"github.com/dmitrijs2005/dysh/internal/dbx"
	"github.com/dmitrijs2005/dysh/internal/filex"
)

const (
	updatedAtSuffix = ".updated_at"
	saltKey         = "kdf_salt"
	checkKey        = "kdf_check"
	saltSize        = 16
)

var checkValue = []byte("dysh")

type Store struct {
	db  *sql.DB
	key []byte
	now func() time.Time
}

// New returns a Store sealing values under key.
func New(db *sql.DB, key []byte) (*Store, error) {
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", common.ErrInvalidKey, cryptox.KeySize, len(key))
	}
	return &Store{db: db, key: key, now: time.Now}, nil
}

// LoadOrCreateKey reads the device key file, creating it with a random key
// on first use.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, _, err := filex.ReadOrCreateSecret(path, cryptox.NewKey)
	if err != nil {
		return nil, err
	}
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("%w: key file %s holds %d bytes", common.ErrInvalidKey, path, len(key))
	}
	return key, nil
}

// KeyFromPassphrase derives the store key from a passphrase. The salt and a
// check value live in the metadata table; a wrong passphrase yields
// common.ErrInvalidKey.
func KeyFromPassphrase(ctx context.Context, db *sql.DB, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", common.ErrInvalidKey)
	}

	var key []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		salt, err := repo.Get(ctx, saltKey)
		if err != nil {
			return err
		}

		if salt == nil {
			salt = common.GenerateRandByteArray(saltSize)
			key = cryptox.DeriveKey([]byte(passphrase), salt)
			check, err := cryptox.Seal(checkValue, key)
			if err != nil {
				return err
			}
			if err := repo.Set(ctx, saltKey, salt); err != nil {
				return err
			}
			return repo.Set(ctx, checkKey, check)
		}

		key = cryptox.DeriveKey([]byte(passphrase), salt)
		check, err := repo.Get(ctx, checkKey)
		if err != nil {
			return err
		}
		plain, err := cryptox.Open(check, key)
		if err != nil || !bytes.Equal(plain, checkValue) {
			return fmt.Errorf("%w: passphrase does not match", common.ErrInvalidKey)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, err := metadata.NewSQLiteRepository(s.db).Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if sealed == nil {
		return "", false, nil
	}
	plain, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return "", false, fmt.Errorf("open %s: %w", key, err)
	}
	return string(plain), true, nil
}

// Set stores value and its write time in one transaction.
func (s *Store) Set(ctx context.Context, key, value string) error {
	sealed, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		return err
	}
	stamp := []byte(s.now().UTC().Format(time.RFC3339Nano))

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, key, sealed); err != nil {
			return err
		}
		return repo.Set(ctx, key+updatedAtSuffix, stamp)
	})
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, key, key+updatedAtSuffix)
	})
}

// UpdatedAt reports when key was last written.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, key+updatedAtSuffix)
	if err != nil || raw == nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s%s", common.ErrCorruptValue, key, updatedAtSuffix)
	}
	return t, true, nil
}

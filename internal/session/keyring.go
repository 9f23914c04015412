package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the OS keychain service entries are filed under
const DefaultKeyringService = "com.erauner.storefront"

// KeyringStorage keeps each key as a separate OS keychain entry
type KeyringStorage struct {
	service string
}

// NewKeyringStorage stores entries under service ("" selects DefaultKeyringService)
func NewKeyringStorage(service string) *KeyringStorage {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringStorage{service: service}
}

func (k *KeyringStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := keyring.Get(k.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		log.Debug().Str("key", key).Msg("no entry found in keyring")
		return "", false, nil
	}
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("failed to read keyring entry")
		return "", false, fmt.Errorf("keyring get %q: %w", key, err)
	}
	return value, true, nil
}

func (k *KeyringStorage) Set(ctx context.Context, key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("keyring not available")
		return fmt.Errorf("keyring set %q: %w", key, err)
	}
	log.Debug().Str("key", key).Msg("stored keyring entry")
	return nil
}

func (k *KeyringStorage) Delete(ctx context.Context, key string) error {
	err := keyring.Delete(k.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		log.Debug().Err(err).Str("key", key).Msg("failed to delete keyring entry")
		return fmt.Errorf("keyring delete %q: %w", key, err)
	}
	return nil
}

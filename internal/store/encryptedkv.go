package store

import (
	"context"
	"fmt"

	"github.com/jefflong/lzryek-followup/internal/security"
	"go.uber.org/zap"
)

// EncryptedKV wraps another KV and encrypts values at rest with
// AES-256-GCM. Keys stay in the clear so the underlying backend can
// address records normally.
type EncryptedKV struct {
	inner     KV
	encryptor *security.Encryptor
	logger    *zap.Logger
}

// NewEncryptedKV creates an encrypting wrapper around kv.
func NewEncryptedKV(inner KV, key []byte, logger *zap.Logger) (*EncryptedKV, error) {
	encryptor, err := security.NewEncryptor(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create encryptor: %w", err)
	}

	return &EncryptedKV{
		inner:     inner,
		encryptor: encryptor,
		logger:    logger,
	}, nil
}

// Get fetches and decrypts a value.
func (e *EncryptedKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ciphertext, found, err := e.inner.Get(ctx, key)
	if err != nil || !found {
		return nil, found, err
	}

	plaintext, err := e.encryptor.Decrypt(ciphertext)
	if err != nil {
		e.logger.Error("failed to decrypt stored value",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, false, fmt.Errorf("failed to decrypt value for %s: %w", key, err)
	}
	return plaintext, true, nil
}

// Set encrypts and stores a value.
func (e *EncryptedKV) Set(ctx context.Context, key string, value []byte) error {
	ciphertext, err := e.encryptor.Encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt value for %s: %w", key, err)
	}
	return e.inner.Set(ctx, key, ciphertext)
}

// Delete removes a value from the underlying store.
func (e *EncryptedKV) Delete(ctx context.Context, key string) error {
	return e.inner.Delete(ctx, key)
}

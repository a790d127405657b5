package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/ports"
)

// EnvelopeKey is the variable that carries the ciphertext in a stored session.
const EnvelopeKey = "__encrypted__"

// KeySize is the required key length (AES-256).
const KeySize = 32

// ErrDecrypt is returned when no configured key opens a stored session.
var ErrDecrypt = errors.New("failed to decrypt session")

// EncryptionConfig holds the keys for session encryption.
type EncryptionConfig struct {
	// ActiveKey encrypts every save.
	ActiveKey []byte
	// FallbackKeys are tried on load after ActiveKey, for key rotation.
	FallbackKeys [][]byte
}

// Validate checks the key sizes.
func (c EncryptionConfig) Validate() error {
	if len(c.ActiveKey) != KeySize {
		return fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(c.ActiveKey))
	}
	for i, k := range c.FallbackKeys {
		if len(k) != KeySize {
			return fmt.Errorf("fallback key %d must be %d bytes, got %d", i, KeySize, len(k))
		}
	}
	return nil
}

type encryptionMiddleware struct {
	next   ports.SessionStore
	config EncryptionConfig
}

// NewEncryptionMiddleware stores sessions as an envelope whose only variable
// is the AES-GCM ciphertext of the whole session. The ID and timestamps stay
// in clear so List and session inspection keep working.
// It panics on an invalid config; call Validate first for user input.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if err := config.Validate(); err != nil {
		panic(err)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &encryptionMiddleware{next: next, config: config}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, session *domain.Session) error {
	plain, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	sealed, err := encrypt(plain, m.config.ActiveKey)
	if err != nil {
		return err
	}

	envelope := &domain.Session{
		ID:        session.ID,
		Variables: map[string]string{EnvelopeKey: base64.StdEncoding.EncodeToString(sealed)},
		History:   []string{},
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
	return m.next.Save(ctx, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	envelope, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	encoded, ok := envelope.Variables[EnvelopeKey]
	if !ok {
		// Written before encryption was enabled.
		return envelope, nil
	}
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	plain, err := m.decryptWithRotation(sealed)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{}
	if err := json.Unmarshal(plain, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.Variables == nil {
		session.Variables = make(map[string]string)
	}
	return session, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *encryptionMiddleware) decryptWithRotation(sealed []byte) ([]byte, error) {
	if plain, err := decrypt(sealed, m.config.ActiveKey); err == nil {
		return plain, nil
	}
	for _, key := range m.config.FallbackKeys {
		if plain, err := decrypt(sealed, key); err == nil {
			return plain, nil
		}
	}
	return nil, ErrDecrypt
}

func encrypt(plain, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to read nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(sealed, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	size := gcm.NonceSize()
	if len(sealed) < size {
		return nil, ErrDecrypt
	}
	return gcm.Open(nil, sealed[:size], sealed[size:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

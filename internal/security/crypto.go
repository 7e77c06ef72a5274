// Package security provides the optional passphrase encryption for
// exported snapshots. The store itself is plaintext SQLite; only the
// export document a user carries off-device is ever encrypted.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLength = 16
	keyLength  = 32

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var (
	ErrEmptyPassphrase  = errors.New("passphrase must not be empty")
	ErrMalformedPayload = errors.New("encrypted payload is malformed")
	ErrWrongPassphrase  = errors.New("decryption failed, wrong passphrase or corrupted data")
)

// EncryptExport seals plaintext under a passphrase-derived key. The output
// is salt || nonce || ciphertext; everything needed to decrypt except the
// passphrase travels with the payload.
func EncryptExport(passphrase string, plaintext []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	sealer, err := newSealer(passphrase, salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, sealer.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	payload := make([]byte, 0, saltLength+len(nonce)+len(plaintext)+sealer.Overhead())
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	return sealer.Seal(payload, nonce, plaintext, nil), nil
}

// DecryptExport reverses EncryptExport.
func DecryptExport(passphrase string, payload []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if len(payload) < saltLength {
		return nil, ErrMalformedPayload
	}
	salt := payload[:saltLength]
	sealer, err := newSealer(passphrase, salt)
	if err != nil {
		return nil, err
	}
	rest := payload[saltLength:]
	if len(rest) < sealer.NonceSize() {
		return nil, ErrMalformedPayload
	}
	nonce := rest[:sealer.NonceSize()]
	plaintext, err := sealer.Open(nil, nonce, rest[sealer.NonceSize():], nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}

func newSealer(passphrase string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

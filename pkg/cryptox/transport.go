package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// ErrDecode reports a malformed or undecryptable transport payload.
var ErrDecode = errors.New("cryptox: malformed transport payload")

// TransportCodec reverses the obfuscation the web client applies to passwords
// before sending them over the wire (AES-256-GCM over a base64 payload of
// nonce||ciphertext). This is transport-layer obfuscation only: the key ships
// with the client, so it must never be treated as cryptographic protection.
// Real protection comes from TLS and from bcrypt hashing server-side.
type TransportCodec struct {
	key [32]byte
}

// NewTransportCodec derives a fixed-length key from the configured secret.
func NewTransportCodec(secret string) *TransportCodec {
	return &TransportCodec{key: sha256.Sum256([]byte(secret))}
}

// Decode undoes the client-side obfuscation and returns the plaintext.
// Any structural or authentication failure maps to ErrDecode.
func (c *TransportCodec) Decode(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrDecode
	}

	gcm, err := c.aead()
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", ErrDecode
	}

	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecode
	}
	return string(plain), nil
}

// Encode applies the client-side obfuscation. The server only needs it in
// tests, but keeping both directions next to each other documents the format.
func (c *TransportCodec) Encode(plain string) (string, error) {
	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *TransportCodec) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

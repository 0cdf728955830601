package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/crypto/scrypt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ScryptN = 32768 // 2^15
	ScryptR = 8
	ScryptP = 1
	KeyLen  = 32 // AES-256 key length

	vaultVersion = 1
)

// ErrWrongPassword is returned when a vault cannot be opened with the given
// password
var ErrWrongPassword = errors.New("wrong password or corrupted vault")

// Vault is an Authorization header value encrypted at rest with a key
// derived from a password
type Vault struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

type vaultData struct {
	Authorization string `json:"authorization"`
}

// NewVault encrypts authorization under password
func NewVault(authorization, password string) (*Vault, error) {
	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	data, err := json.Marshal(vaultData{Authorization: authorization})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize vault data: %w", err)
	}
	defer clearBytes(data)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return &Vault{
		Version: vaultVersion,
		Salt:    salt,
		Nonce:   nonce,
		Data:    aead.Seal(nil, nonce, data, nil),
	}, nil
}

// Decrypt returns the stored Authorization header value
func (v *Vault) Decrypt(password string) (string, error) {
	if v.Version != vaultVersion {
		return "", fmt.Errorf("unsupported vault version %d", v.Version)
	}

	key, err := deriveKey(password, v.Salt)
	if err != nil {
		return "", err
	}
	defer clearBytes(key)

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}
	if len(v.Nonce) != aead.NonceSize() {
		return "", ErrWrongPassword
	}

	plaintext, err := aead.Open(nil, v.Nonce, v.Data, nil)
	if err != nil {
		return "", ErrWrongPassword
	}
	defer clearBytes(plaintext)

	var data vaultData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return "", fmt.Errorf("failed to deserialize vault data: %w", err)
	}

	return data.Authorization, nil
}

// Save writes the vault to path, readable only by the owner
func (v *Vault) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize vault: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}
	return nil
}

// LoadVault reads a vault written by Save
func LoadVault(path string) (*Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v Vault
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vault: %w", err)
	}
	return &v, nil
}

func deriveKey(password string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, ScryptN, ScryptR, ScryptP, KeyLen)
	if err != nil {
		return nil, fmt.Errorf("scrypt key derivation failed: %w", err)
	}
	return key, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

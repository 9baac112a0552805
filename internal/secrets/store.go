package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// lightweight per-user session store (file, 0600) with AES-GCM obfuscation.
// Not a replacement for OS keychains but avoids a plain-text profile id.

const fileName = "session.json"

var ErrNoSession = errors.New("secrets: no remembered session")

type sessionFile struct {
	Account string `json:"account"` // base64(ciphertext of profile id)
}

// Vault remembers which profile signed in last so the app can resume it.
type Vault struct {
	dir string
}

// Open returns a vault rooted at dir. The directory is created on first write.
func Open(dir string) *Vault {
	return &Vault{dir: dir}
}

// Remember stores profileID as the account to resume on next launch.
func (v *Vault) Remember(profileID string) error {
	if profileID == "" {
		return fmt.Errorf("profile id required")
	}
	path, err := v.filePath()
	if err != nil {
		return err
	}
	ct, err := encrypt([]byte(profileID))
	if err != nil {
		return err
	}
	sf := sessionFile{Account: base64.StdEncoding.EncodeToString(ct)}
	return save(path, sf)
}

// Remembered returns the stored profile id, or ErrNoSession when the vault
// is empty or unreadable with the current user key.
func (v *Vault) Remembered() (string, error) {
	path, err := v.filePath()
	if err != nil {
		return "", err
	}
	sf, err := load(path)
	if err != nil {
		return "", err
	}
	if sf.Account == "" {
		return "", ErrNoSession
	}
	raw, err := base64.StdEncoding.DecodeString(sf.Account)
	if err != nil {
		return "", ErrNoSession
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", ErrNoSession
	}
	return string(pt), nil
}

// Forget clears the remembered session. Missing vaults are fine.
func (v *Vault) Forget() error {
	path, err := v.filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (v *Vault) filePath() (string, error) {
	if err := os.MkdirAll(v.dir, 0o700); err != nil { // restrict directory
		return "", err
	}
	return filepath.Join(v.dir, fileName), nil
}

func load(path string) (sessionFile, error) {
	var sf sessionFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sessionFile{}, nil
		}
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, err
	}
	return sf, nil
}

func save(path string, sf sessionFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func masterKey() ([]byte, error) {
	user := os.Getenv("USER")
	base := fmt.Sprintf("speaksharp-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:], nil
}

func encrypt(plain []byte) ([]byte, error) {
	key, err := masterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	key, err := masterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}

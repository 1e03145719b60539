package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const pepperBytes = 32

var (
	pepperMu sync.RWMutex
	pepper   string
)

// Pepper returns the secret appended to every password before hashing.
// It is empty until SetPepper or LoadPepper is called.
func Pepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

// SetPepper installs p as the process pepper.
func SetPepper(p string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = p
}

// LoadPepper reads the pepper from path, creating the file with a fresh
// random value when it does not exist, and installs it.
func LoadPepper(path string) error {
	if path == "" {
		return errors.New("cryptox: pepper path is empty")
	}
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		p := strings.TrimSpace(string(data))
		if p == "" {
			return fmt.Errorf("cryptox: pepper file %s is empty", path)
		}
		SetPepper(p)
		return nil

	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return err
		}
		buf := make([]byte, pepperBytes)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		p := base64.RawURLEncoding.EncodeToString(buf)
		if err := os.WriteFile(path, []byte(p), 0o600); err != nil {
			return err
		}
		SetPepper(p)
		return nil

	default:
		return err
	}
}

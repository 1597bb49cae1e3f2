package credentials

import (
	"encoding/json"
	"fmt"

	"glitchvid/store"
	"glitchvid/utils"
)

var kv *store.KV

// OpenDB opens the credentials store at dbPath.
func OpenDB(dbPath string) error {
	var err error
	kv, err = store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open credentials store: %w", err)
	}
	return nil
}

// CloseDB closes the credentials store.
func CloseDB() error {
	if kv != nil {
		return kv.Close()
	}
	return nil
}

// Store saves a credentials map under a freshly generated access key and
// returns the key. Upload tokens reference backends by this key so raw
// credentials never travel inside a JWT.
func Store(creds map[string]string) (string, error) {
	if kv == nil {
		return "", fmt.Errorf("credentials store not initialized")
	}

	key, err := utils.GenerateRandomHex(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate access key: %w", err)
	}

	encoded, err := json.Marshal(creds)
	if err != nil {
		return "", fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := kv.Set(key, encoded); err != nil {
		return "", fmt.Errorf("failed to store credentials: %w", err)
	}
	return key, nil
}

// Get resolves an access key back into its credentials map.
func Get(key string) (map[string]string, error) {
	if kv == nil {
		return nil, fmt.Errorf("credentials store not initialized")
	}

	data, err := kv.Get(key)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("no credentials registered for key %s", key)
		}
		return nil, err
	}

	creds := make(map[string]string)
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return creds, nil
}

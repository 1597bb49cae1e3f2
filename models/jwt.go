package models

type GlitchJWT struct {
	Issuer    string  `json:"iss"` // optional
	Subject   string  `json:"sub"`
	IssuedAt  int64   `json:"iat"`
	ExpiresAt int64   `json:"exp"`
	Job       JobSpec `json:"job"`
}

// Core job specification carried inside an upload token
type JobSpec struct {
	CompletionCallback string            `json:"completionCallback"` // callback URL
	CallbackHeaders    map[string]string `json:"callbackHeaders,omitempty"`

	// Storage backends. Each backend references a key registered via
	// POST /credentials (random string mapped in PebbleDB)
	StorageKeys map[string]string `json:"storageKeys,omitempty"` // e.g., {"s3":"abc123", "sftp":"def456"}

	// Direct host storage
	DirectHost bool   `json:"directHost,omitempty"` // serve the result via glitchvid HTTP
	SubDir     string `json:"subDir,omitempty"`     // tenant folder or logical subdir
}

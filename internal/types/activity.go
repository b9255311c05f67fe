package types

import "time"

// Operation names a catalog operation recorded in the activity log
type Operation string

const (
	OpLoad   Operation = "load"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ActivityEntry is one completed catalog operation
type ActivityEntry struct {
	ID         int64     `json:"id" yaml:"id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Op         Operation `json:"op" yaml:"op"`
	FoodID     string    `json:"foodId,omitempty" yaml:"foodId,omitempty"`
	FoodName   string    `json:"foodName,omitempty" yaml:"foodName,omitempty"`
	Success    bool      `json:"success" yaml:"success"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMS int64     `json:"durationMs" yaml:"durationMs"`
	BaseURL    string    `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

// TLSConfig holds TLS/mTLS settings for the backend connection
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty" yaml:"certFile,omitempty" toml:"certFile"`
	KeyFile            string `json:"keyFile,omitempty" yaml:"keyFile,omitempty" toml:"keyFile"`
	CAFile             string `json:"caFile,omitempty" yaml:"caFile,omitempty" toml:"caFile"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty" yaml:"insecureSkipVerify,omitempty" toml:"insecureSkipVerify"`
}

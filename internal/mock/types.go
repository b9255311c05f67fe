package mock

import (
	"time"

	"github.com/studiowebux/foodboard/internal/types"
)

// Config represents the mock backend configuration
type Config struct {
	Port    int                `json:"port" yaml:"port"`                       // Server port (default: 3333)
	Host    string             `json:"host" yaml:"host"`                       // Server host (default: localhost)
	Logging bool               `json:"logging" yaml:"logging"`                 // Enable request logging
	Delay   int                `json:"delay,omitempty" yaml:"delay,omitempty"` // Response delay in milliseconds
	Foods   []types.FoodRecord `json:"foods,omitempty" yaml:"foods,omitempty"` // Initial catalog
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Body      string        `json:"body"`
	Status    int           `json:"status"`
	Duration  time.Duration `json:"duration"`
}

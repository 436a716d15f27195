package client

import "time"

// Config represents client handle configuration
type Config struct {
	BaseURL         string            `yaml:"baseURL" json:"baseURL"`
	Headers         map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	WithCredentials bool              `yaml:"withCredentials,omitempty" json:"withCredentials,omitempty"`
	Timeout         time.Duration     `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// JSONHeaders returns default headers of a JSON API
func JSONHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

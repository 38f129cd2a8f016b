package httpposter

import "time"

type Config struct {
	// Url is the service base, e.g. "https://core.example.org".
	Url        string `yaml:"url"`
	TimeoutSec int    `yaml:"timeoutSec"`
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64 `yaml:"rateLimit"`
	Burst     int     `yaml:"burst"`
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return time.Second * 30
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

package metric

type configSource interface {
	GetMetric() Config
}

type Config struct {
	// Addr enables the /metrics endpoint when set, e.g. "127.0.0.1:9090".
	Addr string `yaml:"addr"`
}

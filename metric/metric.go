package metric

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
)

const CName = "common.metric"

var log = logger.NewNamed(CName)

func New() Metric {
	return new(metric)
}

type Metric interface {
	Registry() *prometheus.Registry
	RequestLog(ctx context.Context, fields ...zap.Field)
	// Addr returns the address /metrics is served on, empty when disabled.
	Addr() string
	app.ComponentRunnable
}

type metric struct {
	registry *prometheus.Registry
	rpcLog   logger.CtxLogger
	config   Config
	appName  string
	version  string
	server   *http.Server
	addr     string
}

func (m *metric) Init(a *app.App) (err error) {
	m.registry = prometheus.NewRegistry()
	m.config = a.MustComponent("config").(configSource).GetMetric()
	m.rpcLog = logger.NewNamed("rpcLog")
	m.appName = a.Name()
	m.version = a.Version()
	return nil
}

func (m *metric) Name() string {
	return CName
}

func (m *metric) Run(ctx context.Context) (err error) {
	if err = m.registry.Register(collectors.NewBuildInfoCollector()); err != nil {
		return err
	}
	if err = m.registry.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	if err = m.registry.Register(newVersionsCollector(m.appName, m.version)); err != nil {
		return err
	}
	if m.config.Addr == "" {
		return nil
	}
	lis, err := net.Listen("tcp", m.config.Addr)
	if err != nil {
		return err
	}
	m.addr = lis.Addr().String()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	m.server = &http.Server{Handler: mux, ReadHeaderTimeout: time.Second * 10}
	go func() {
		if serveErr := m.server.Serve(lis); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Warn("metric server stopped", zap.Error(serveErr))
		}
	}()
	log.Info("serving metrics", zap.String("addr", m.addr))
	return nil
}

func (m *metric) Registry() *prometheus.Registry {
	return m.registry
}

func (m *metric) Addr() string {
	return m.addr
}

func (m *metric) Close(ctx context.Context) (err error) {
	if m.server != nil {
		return m.server.Shutdown(ctx)
	}
	return
}

// Package httpposter sends binary request bodies to a remote service over
// plain HTTP POST and maps failures onto rpcerr.
package httpposter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
)

const (
	// ErrorCodeHeader carries a registered rpcerr code on failed responses.
	ErrorCodeHeader = "X-Error-Code"
	contentType     = "application/octet-stream"
	// MaxResponseSize bounds how much of a response body is read.
	MaxResponseSize = 64 << 20
)

var log = logger.NewNamed("common.net.httpposter")

type Poster interface {
	// Post sends body to base url + path and returns the response body of a
	// 200 response. Any other outcome is a *rpcerr.TransportError.
	Post(ctx context.Context, path string, body []byte) ([]byte, error)
}

// New creates a poster. A nil registry disables metrics.
func New(conf Config, subsystem string, reg prometheus.Registerer) (Poster, error) {
	if conf.Url == "" {
		return nil, fmt.Errorf("%s: url is not configured", subsystem)
	}
	p := &poster{
		base:   strings.TrimRight(conf.Url, "/"),
		client: &http.Client{Timeout: conf.timeout()},
	}
	if conf.RateLimit > 0 {
		burst := conf.Burst
		if burst <= 0 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(conf.RateLimit), burst)
	}
	if reg != nil {
		p.duration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: "anyshare",
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Objectives: map[float64]float64{
				0.5:  0.5,
				0.85: 0.01,
				0.95: 0.0005,
				0.99: 0.0001,
			},
		}, []string{"path", "status"})
		if err := reg.Register(p.duration); err != nil {
			log.Warn("can't register request metric", zap.String("subsystem", subsystem), zap.Error(err))
			p.duration = nil
		}
	}
	return p, nil
}

type poster struct {
	base     string
	client   *http.Client
	limiter  *rate.Limiter
	duration *prometheus.SummaryVec
}

func (p *poster) Post(ctx context.Context, path string, body []byte) (resp []byte, err error) {
	if p.limiter != nil {
		if err = p.limiter.Wait(ctx); err != nil {
			return nil, &rpcerr.TransportError{Err: err}
		}
	}
	st := time.Now()
	status := 0
	defer func() {
		if p.duration != nil {
			p.duration.WithLabelValues(path, strconv.Itoa(status)).Observe(time.Since(st).Seconds())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.base+"/"+strings.TrimLeft(path, "/"), bytes.NewReader(body))
	if err != nil {
		return nil, &rpcerr.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	res, err := p.client.Do(req)
	if err != nil {
		log.DebugCtx(ctx, "post failed", zap.String("path", path), zap.Error(err))
		return nil, &rpcerr.TransportError{Err: err}
	}
	defer res.Body.Close()
	status = res.StatusCode

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxResponseSize+1))
	if err != nil {
		return nil, &rpcerr.TransportError{Status: status, Err: err}
	}
	if res.StatusCode != http.StatusOK {
		te := &rpcerr.TransportError{Status: status}
		if code, parseErr := strconv.ParseUint(res.Header.Get(ErrorCodeHeader), 10, 64); parseErr == nil {
			te.Code = code
		}
		log.DebugCtx(ctx, "unexpected status", zap.String("path", path), zap.Int("status", status))
		return nil, te
	}
	if len(data) > MaxResponseSize {
		return nil, &rpcerr.TransportError{Status: status, Err: fmt.Errorf("response exceeds %d bytes", MaxResponseSize)}
	}
	return data, nil
}

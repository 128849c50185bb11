package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/shengmingqijiquan/streamlit/config"
	"github.com/shengmingqijiquan/streamlit/metric"
	"github.com/shengmingqijiquan/streamlit/pkg/netutil"
)

// externalIPTimeout bounds the one-time external IP discovery performed
// during origin validation.
const externalIPTimeout = 10 * time.Second

// originCandidate resolves to an allowed hostname, or reports absence.
// Candidates are resolved lazily so network-dependent lookups only run
// when earlier, cheaper candidates fail to match.
type originCandidate func() (string, bool)

// literal wraps a constant hostname as an immediately-resolving candidate.
func literal(host string) originCandidate {
	return func() (string, bool) { return host, true }
}

// OriginPolicy decides whether request origins are acceptable under the
// configured CORS policy. A nil metrics value disables instrumentation.
type OriginPolicy struct {
	opts    *config.Options
	metrics *metric.Metrics
	logger  *slog.Logger

	// Lookup seams, replaceable in tests
	getHostname func(string) string
	internalIP  func() (string, bool)
	externalIP  func() (string, bool)
}

// NewOriginPolicy creates a policy reading its configuration from opts.
func NewOriginPolicy(opts *config.Options, metrics *metric.Metrics, logger *slog.Logger) *OriginPolicy {
	if logger == nil {
		logger = slog.Default()
	}
	return &OriginPolicy{
		opts:        opts,
		metrics:     metrics,
		logger:      logger,
		getHostname: netutil.GetHostname,
		internalIP:  netutil.GetInternalIP,
		externalIP: func() (string, bool) {
			ctx, cancel := context.WithTimeout(context.Background(), externalIPTimeout)
			defer cancel()
			return netutil.GetExternalIP(ctx)
		},
	}
}

// IsAllowedOrigin reports whether the URL's hostname is an allowed origin.
//
// Allowed origins:
//  1. localhost and its IP aliases
//  2. The manually configured server address and S3 URL host
//  3. The internal and external IP addresses of this machine
//  4. The configured S3 bucket name
//
// If server.enableCORS is false, every origin is allowed. A URL whose
// hostname cannot be extracted matches nothing.
func (p *OriginPolicy) IsAllowedOrigin(rawURL string) bool {
	allowed := p.isAllowedOrigin(rawURL)

	if p.metrics != nil {
		verdict := metric.VerdictAllowed
		if !allowed {
			verdict = metric.VerdictRejected
		}
		p.metrics.OriginChecks.WithLabelValues(verdict).Inc()
	}
	return allowed
}

func (p *OriginPolicy) isAllowedOrigin(rawURL string) bool {
	if !p.opts.GetBool(config.KeyEnableCORS) {
		// Allow everything when CORS is disabled.
		return true
	}

	hostname := p.getHostname(rawURL)
	if hostname == "" {
		p.logger.Debug("origin rejected, no hostname", "url", rawURL)
		return false
	}

	// Cheap constant checks first, then options that only need a config
	// read, then the lookups that open sockets or make HTTP requests.
	candidates := []originCandidate{
		literal("localhost"),
		literal("0.0.0.0"),
		literal("127.0.0.1"),
		p.configuredServerAddress,
		p.configuredS3URLHost,
		p.internalIP,
		p.externalIP,
		p.configuredS3Bucket,
	}

	for _, candidate := range candidates {
		host, ok := candidate()
		if !ok || host == "" {
			continue
		}
		if hostname == host {
			return true
		}
	}

	p.logger.Debug("origin rejected", "url", rawURL, "hostname", hostname)
	return false
}

// configuredServerAddress resolves to the host of browser.serverAddress
// when that option was explicitly set.
func (p *OriginPolicy) configuredServerAddress() (string, bool) {
	if !p.opts.IsManuallySet(config.KeyBrowserAddr) {
		return "", false
	}
	return p.getHostname(p.opts.GetString(config.KeyBrowserAddr)), true
}

// configuredS3URLHost resolves to the host of s3.url when that option was
// explicitly set.
func (p *OriginPolicy) configuredS3URLHost() (string, bool) {
	if !p.opts.IsManuallySet(config.KeyS3URL) {
		return "", false
	}
	return p.getHostname(p.opts.GetString(config.KeyS3URL)), true
}

// configuredS3Bucket resolves to the s3.bucket value when non-empty.
func (p *OriginPolicy) configuredS3Bucket() (string, bool) {
	bucket := p.opts.GetString(config.KeyS3Bucket)
	return bucket, bucket != ""
}

package netutil

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shengmingqijiquan/streamlit/pkg/retry"
)

// externalIPEndpoint echoes the caller's public IP as a plain-text body.
var externalIPEndpoint = "https://checkip.amazonaws.com"

// internalProbeAddr is only used to select an outbound interface;
// no packets are sent over the UDP "connection".
const internalProbeAddr = "8.8.8.8:80"

var httpClient = &http.Client{Timeout: 5 * time.Second}

// GetHostname extracts the hostname component from a URL. It tolerates
// scheme-less input ("my-host:8501/path") and returns "" when no hostname
// can be extracted.
func GetHostname(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	// Scheme-less input either fails to parse outright ("127.0.0.1:8501"
	// reads as a malformed scheme) or parses into Path or Opaque; in both
	// cases reparse as a protocol-relative reference to recover the
	// authority. Input that carries a scheme and still fails is malformed.
	u, err := url.Parse(rawURL)
	if err != nil && strings.Contains(rawURL, "://") {
		return ""
	}
	if err != nil || u.Host == "" {
		u, err = url.Parse("//" + rawURL)
		if err != nil {
			return ""
		}
	}
	return u.Hostname()
}

// GetInternalIP reports the machine's LAN-facing IP address. The UDP dial
// selects the interface the OS would route external traffic through
// without sending anything.
func GetInternalIP() (string, bool) {
	conn, err := net.Dial("udp", internalProbeAddr)
	if err != nil {
		return "", false
	}
	defer func() { _ = conn.Close() }()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return "", false
	}
	return addr.IP.String(), true
}

var (
	externalIPMu     sync.Mutex
	externalIPCached string
	externalIPProbed bool
)

// GetExternalIP reports the machine's public IP address as seen by an
// external echo service. The first call performs the lookup (with retry);
// the outcome is cached for the process lifetime.
func GetExternalIP(ctx context.Context) (string, bool) {
	externalIPMu.Lock()
	defer externalIPMu.Unlock()

	if externalIPProbed {
		return externalIPCached, externalIPCached != ""
	}
	externalIPProbed = true

	ip, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (string, error) {
		return fetchExternalIP(ctx, httpClient, externalIPEndpoint)
	})
	if err != nil {
		return "", false
	}

	externalIPCached = ip
	return ip, true
}

// fetchExternalIP performs one lookup against the echo endpoint.
func fetchExternalIP(ctx context.Context, client *http.Client, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", retry.NonRetryable(err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("external IP lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", retry.NonRetryable(fmt.Errorf("external IP lookup returned %q, not an IP", ip))
	}
	return ip, nil
}

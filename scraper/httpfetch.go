package scraper

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	tls2 "github.com/refraction-networking/utls"
	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"

	"github.com/use-agent/siteclone/config"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxStylesheetBytes caps a refetched stylesheet body.
const maxStylesheetBytes = 10 * 1024 * 1024

// StyleFetcher downloads stylesheets the page itself could not read,
// presenting a Chrome TLS fingerprint (utls) and pacing requests.
type StyleFetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	cfg       config.FetchConfig
	userAgent string
}

// NewStyleFetcher creates a fetcher. proxyRaw may be empty.
func NewStyleFetcher(cfg config.FetchConfig, proxyRaw, userAgent string) *StyleFetcher {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialTLSChrome(ctx, network, addr, proxyRaw)
		},
	}
	if proxyRaw != "" {
		proxyURL, err := url.Parse(proxyRaw)
		if err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	if userAgent == "" {
		userAgent = chromeUA
	}

	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &StyleFetcher{
		client:    &http.Client{Transport: transport},
		limiter:   rate.NewLimiter(limit, burst),
		cfg:       cfg,
		userAgent: userAgent,
	}
}

// Fetch retrieves the stylesheet at target and returns its text.
func (f *StyleFetcher) Fetch(ctx context.Context, target string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("httpfetch: rate limit: %w", err)
	}
	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("httpfetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/css,*/*;q=0.1")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpfetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("httpfetch: HTTP %d for %s", resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStylesheetBytes))
	if err != nil {
		return "", fmt.Errorf("httpfetch: read body: %w", err)
	}
	return string(body), nil
}

// Close releases idle connections.
func (f *StyleFetcher) Close() {
	f.client.CloseIdleConnections()
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via utls.
// socks5 proxies are negotiated before the handshake; http(s) proxies are
// handled by the transport.
func dialTLSChrome(ctx context.Context, network, addr, proxyRaw string) (net.Conn, error) {
	var rawConn net.Conn
	var err error

	dialer := &net.Dialer{}

	if proxyRaw != "" {
		proxyURL, parseErr := url.Parse(proxyRaw)
		if parseErr == nil && (proxyURL.Scheme == "socks5" || proxyURL.Scheme == "socks5h") {
			rawConn, err = dialSOCKS5(ctx, dialer, proxyURL, network, addr)
			if err != nil {
				return nil, fmt.Errorf("socks5 dial: %w", err)
			}
		}
	}

	if rawConn == nil {
		rawConn, err = dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{ServerName: host}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// dialSOCKS5 opens a tunnel to addr through the SOCKS5 proxy at proxyURL.
func dialSOCKS5(ctx context.Context, forward *net.Dialer, proxyURL *url.URL, network, addr string) (net.Conn, error) {
	var auth *proxy.Auth
	if proxyURL.User != nil {
		pass, _ := proxyURL.User.Password()
		auth = &proxy.Auth{User: proxyURL.User.Username(), Password: pass}
	}

	d, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, forward)
	if err != nil {
		return nil, err
	}
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, network, addr)
	}
	return d.Dial(network, addr)
}

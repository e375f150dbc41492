package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/use-agent/siteclone/config"
	"github.com/use-agent/siteclone/models"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), models.ErrCodeTimeout},
		{"canceled", context.Canceled, models.ErrCodeTimeout},
		{"other", errors.New("net::ERR_NAME_NOT_RESOLVED"), models.ErrCodeNavigation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizeError(tt.err, "navigation failed")
			if got.Code != tt.want {
				t.Errorf("Code = %q, want %q", got.Code, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("original error not wrapped")
			}
			if !got.IsFatal() {
				t.Error("navigation errors must be fatal")
			}
		})
	}
}

func TestToCaptured(t *testing.T) {
	resp := &proto.NetworkResponse{
		URL:      "https://example.com/app.css",
		Status:   200,
		MIMEType: "text/css",
		Headers: proto.NetworkHeaders{
			"Content-Type":  gson.New("text/css; charset=utf-8"),
			"Cache-Control": gson.New("max-age=60"),
		},
	}
	got := toCaptured(resp)
	if got.ContentType != "text/css; charset=utf-8" {
		t.Errorf("ContentType = %q", got.ContentType)
	}
	if got.Headers["cache-control"] != "max-age=60" {
		t.Errorf("Headers = %v", got.Headers)
	}

	resp.Headers = proto.NetworkHeaders{}
	if got := toCaptured(resp); got.ContentType != "text/css" {
		t.Errorf("MIME fallback ContentType = %q", got.ContentType)
	}
}

// bodyClient answers Network.getResponseBody. A nil result blocks until
// the context ends, like a browser that stopped responding.
type bodyClient struct {
	ctx    context.Context
	result *proto.NetworkGetResponseBodyResult
}

func (c bodyClient) GetContext() context.Context { return c.ctx }

func (c bodyClient) Call(ctx context.Context, _, _ string, _ interface{}) ([]byte, error) {
	if c.result == nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return json.Marshal(c.result)
}

func TestReadBody(t *testing.T) {
	tests := []struct {
		name   string
		result *proto.NetworkGetResponseBodyResult
		want   string
	}{
		{"plain", &proto.NetworkGetResponseBodyResult{Body: "body { margin: 0 }"}, "body { margin: 0 }"},
		{"base64", &proto.NetworkGetResponseBodyResult{Body: "d09GMg==", Base64Encoded: true}, "wOF2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readBody(bodyClient{ctx: context.Background(), result: tt.result}, "1")
			if err != nil {
				t.Fatalf("readBody: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadBody_BoundedByContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := readBody(bodyClient{ctx: ctx}, "1")
		done <- err
	}()

	select {
	case err := <-done:
		var ce *models.CaptureError
		if !errors.As(err, &ce) || ce.Code != models.ErrCodeBodyUnavailable {
			t.Fatalf("err = %v, want BODY_UNAVAILABLE", err)
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want deadline exceeded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("readBody did not return after its context expired")
	}
}

func TestStyleFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/site.css":
			if r.Header.Get("User-Agent") == "" {
				t.Error("missing User-Agent")
			}
			w.Header().Set("Content-Type", "text/css")
			fmt.Fprint(w, "body{color:red}")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewStyleFetcher(config.FetchConfig{RequestsPerSecond: 100, Burst: 1, Timeout: 5 * time.Second}, "", "")
	defer f.Close()

	css, err := f.Fetch(context.Background(), srv.URL+"/site.css")
	if err != nil {
		t.Fatal(err)
	}
	if css != "body{color:red}" {
		t.Errorf("Fetch = %q", css)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.css"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestStyleFetcher_CanceledContext(t *testing.T) {
	f := NewStyleFetcher(config.FetchConfig{RequestsPerSecond: 0.001, Burst: 1}, "", "")
	defer f.Close()

	// Drain the only token so the next Wait has to block.
	f.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, "http://127.0.0.1:1/x.css"); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestDialTLSChrome_SOCKS5Handshake(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	first := make(chan byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b := make([]byte, 1)
		if _, err := io.ReadFull(conn, b); err == nil {
			first <- b[0]
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := dialTLSChrome(ctx, "tcp", "example.com:443", "socks5://"+ln.Addr().String())
	if err == nil {
		conn.Close()
		t.Fatal("expected error when proxy hangs up")
	}

	select {
	case b := <-first:
		if b != 0x05 {
			t.Errorf("first byte to proxy = %#x, want SOCKS5 version 0x05", b)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("proxy never received a byte")
	}
}

func TestIsTracker(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"google-analytics.com", true},
		{"www.google-analytics.com", true},
		{"pagead2.googlesyndication.com", true},
		{"STATIC.HOTJAR.COM", true},
		{"googletagmanager.com.", true},
		{"example.com", false},
		{"fonts.googleapis.com", false},
		{"notcriteo.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isTracker(tt.host); got != tt.want {
			t.Errorf("isTracker(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

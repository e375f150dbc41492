package scraper

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/use-agent/siteclone/models"
)

// CaptureResponses subscribes to network events and hands every response
// to handle once its body has been read. handle may be called from several
// goroutines at once. It must be called before navigating. The returned
// stop function unsubscribes and blocks until all in-flight handlers have
// returned.
func (p *Page) CaptureResponses(ctx context.Context, handle func(models.CapturedResponse)) (stop func(), err error) {
	if err := (proto.NetworkEnable{}).Call(p.page); err != nil {
		return nil, fmt.Errorf("enable network domain: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	var (
		mu      sync.Mutex
		pending = make(map[proto.NetworkRequestID]*proto.NetworkResponse)
		wg      sync.WaitGroup
	)
	take := func(id proto.NetworkRequestID) *proto.NetworkResponse {
		mu.Lock()
		defer mu.Unlock()
		resp := pending[id]
		delete(pending, id)
		return resp
	}

	wait := p.page.Context(ctx).EachEvent(
		func(e *proto.NetworkResponseReceived) {
			mu.Lock()
			pending[e.RequestID] = e.Response
			mu.Unlock()
		},
		func(e *proto.NetworkLoadingFinished) {
			resp := take(e.RequestID)
			if resp == nil {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				captured := toCaptured(resp)
				captured.Body, captured.BodyErr = p.responseBody(e.RequestID)
				handle(captured)
			}()
		},
		func(e *proto.NetworkLoadingFailed) {
			resp := take(e.RequestID)
			if resp == nil {
				return
			}
			captured := toCaptured(resp)
			captured.BodyErr = fmt.Errorf("loading failed: %s", e.ErrorText)
			handle(captured)
		},
	)

	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	return func() {
		cancel()
		<-done
		wg.Wait()
	}, nil
}

// bodyTimeout bounds a single response body read so stop never waits on
// an unresponsive browser.
const bodyTimeout = 10 * time.Second

// responseBody reads the body through the page's own context so it still
// succeeds while the event subscription is being torn down.
func (p *Page) responseBody(id proto.NetworkRequestID) ([]byte, error) {
	return readBody(p.page.Timeout(bodyTimeout), id)
}

// readBody fetches and decodes a response body. The call is bounded by the
// context c carries.
func readBody(c proto.Client, id proto.NetworkRequestID) ([]byte, error) {
	res, err := proto.NetworkGetResponseBody{RequestID: id}.Call(c)
	if err != nil {
		return nil, models.NewCaptureError(models.ErrCodeBodyUnavailable, "response body unavailable", err)
	}
	if !res.Base64Encoded {
		return []byte(res.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(res.Body)
	if err != nil {
		return nil, models.NewCaptureError(models.ErrCodeBodyUnavailable, "response body not decodable", err)
	}
	return body, nil
}

func toCaptured(resp *proto.NetworkResponse) models.CapturedResponse {
	headers := headerMap(resp.Headers)
	ct := headers["content-type"]
	if ct == "" {
		ct = resp.MIMEType
	}
	return models.CapturedResponse{
		URL:         resp.URL,
		Status:      resp.Status,
		ContentType: ct,
		Headers:     headers,
	}
}

// headerMap flattens CDP headers, lower-casing the names.
func headerMap(h proto.NetworkHeaders) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = v.Str()
	}
	return out
}

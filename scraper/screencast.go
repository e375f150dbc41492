package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// Screencast streams PNG frames for d and returns at most keep of them
// plus the number of frames received.
func (p *Page) Screencast(ctx context.Context, d time.Duration, keep int) ([][]byte, int, error) {
	var (
		mu     sync.Mutex
		frames [][]byte
		total  int
	)

	evCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	wait := p.page.Context(evCtx).EachEvent(func(e *proto.PageScreencastFrame) {
		mu.Lock()
		total++
		if len(frames) < keep {
			frames = append(frames, e.Data)
		}
		mu.Unlock()
		_ = proto.PageScreencastFrameAck{SessionID: e.SessionID}.Call(p.page)
	})
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	err := proto.PageStartScreencast{
		Format:        proto.PageStartScreencastFormatPng,
		Quality:       gson.Int(80),
		MaxWidth:      gson.Int(1920),
		MaxHeight:     gson.Int(1080),
		EveryNthFrame: gson.Int(2),
	}.Call(p.page)
	if err != nil {
		cancel()
		<-done
		return nil, 0, fmt.Errorf("start screencast: %w", err)
	}

	timer := time.NewTimer(d)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
	}

	stopErr := proto.PageStopScreencast{}.Call(p.page)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if stopErr != nil {
		return frames, total, fmt.Errorf("stop screencast: %w", stopErr)
	}
	if total == 0 {
		return nil, 0, fmt.Errorf("screencast produced no frames")
	}
	return frames, total, ctx.Err()
}

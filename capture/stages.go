package capture

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/use-agent/siteclone/document"
	"github.com/use-agent/siteclone/models"
	"github.com/use-agent/siteclone/tokens"
)

// maxHeroFrames bounds the screencast frames kept on disk.
const maxHeroFrames = 50

// scroll walks the page top to bottom several times so lazy-loaded
// content and scroll-triggered animations fire while network capture is
// listening.
func (o *Orchestrator) scroll(ctx context.Context) error {
	for pass := 1; pass <= o.cfg.ScrollPasses; pass++ {
		o.logger.Debug("scroll pass", "pass", pass, "of", o.cfg.ScrollPasses)
		if _, err := o.page.Evaluate(ctx, scrollScript, o.cfg.ScrollStep, o.cfg.ScrollPause.Milliseconds()); err != nil {
			return fmt.Errorf("scroll pass %d: %w", pass, err)
		}
		if err := o.wait(ctx, o.cfg.PassPause); err != nil {
			return err
		}
	}
	return o.wait(ctx, o.cfg.PostScrollSettle)
}

func (o *Orchestrator) videoElements(ctx context.Context) ([]models.VideoElement, error) {
	var videos []models.VideoElement
	if err := evalInto(ctx, o.page, &videos, videoElementsScript); err != nil {
		return nil, fmt.Errorf("inspect video elements: %w", err)
	}
	for _, v := range videos {
		if v.IsBlob {
			o.logger.Warn("video uses a blob URL and cannot be downloaded", "index", v.Index, "src", v.CurrentSrc)
		}
	}
	if err := o.out.WriteJSON("data/video_elements.json", videos); err != nil {
		return videos, err
	}
	o.logger.Info("video elements inspected", "count", len(videos))
	return videos, nil
}

// captureAnimations sizes the capture window from the running animations
// and records frames across it.
func (o *Orchestrator) captureAnimations(ctx context.Context) (*models.AnimationCapture, error) {
	o.scrollTop(ctx)

	var info struct {
		Animations  []models.AnimationSample `json:"animations"`
		MaxDuration float64                  `json:"maxDuration"`
	}
	if err := evalInto(ctx, o.page, &info, animationInfoScript); err != nil {
		o.logger.Warn("animation inventory failed, using minimum window", "error", err)
	}

	longest := time.Duration(info.MaxDuration * float64(time.Second))
	window := CaptureWindow(longest, o.cfg.AnimationWindow)
	capture := &models.AnimationCapture{
		Animations:      info.Animations,
		MaxDuration:     info.MaxDuration,
		CaptureDuration: window.Seconds(),
		Interval:        o.cfg.FrameInterval.Seconds(),
		Screenshots:     []string{},
	}
	o.logger.Info("capturing animation frames",
		"animations", len(info.Animations),
		"longest", longest,
		"window", window,
	)

	captured := false
	if o.cfg.HeroScreencast {
		if err := o.heroScreencast(ctx, window, capture); err != nil {
			o.logger.Warn("hero screencast failed, falling back to interval frames", "error", err)
		} else {
			captured = true
		}
	}
	if !captured {
		if err := o.intervalFrames(ctx, window, capture); err != nil {
			return capture, err
		}
	}

	return capture, o.out.WriteJSON("animations/animation_capture.json", capture)
}

func (o *Orchestrator) intervalFrames(ctx context.Context, window time.Duration, capture *models.AnimationCapture) error {
	capture.Method = "interval"
	schedule := FrameSchedule(window, o.cfg.FrameInterval)
	for i, offset := range schedule {
		shot, err := o.page.Screenshot(ctx, false)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			o.logger.Warn("animation frame failed", "offset", offset, "error", err)
		} else {
			name := frameName(offset)
			if err := o.out.WriteFile(path.Join("animations", name), shot); err != nil {
				return err
			}
			capture.Screenshots = append(capture.Screenshots, name)
		}
		if i < len(schedule)-1 {
			if err := o.wait(ctx, o.cfg.FrameInterval); err != nil {
				return err
			}
		}
	}
	return nil
}

// heroScreencast streams frames of the viewport for the whole window and
// keeps the first maxHeroFrames of them.
func (o *Orchestrator) heroScreencast(ctx context.Context, window time.Duration, capture *models.AnimationCapture) error {
	var hero struct {
		Found    bool        `json:"found"`
		Selector string      `json:"selector"`
		Rect     models.Rect `json:"rect"`
	}
	if err := evalInto(ctx, o.page, &hero, heroBoxScript, document.HeroSelectors); err == nil && hero.Found {
		o.logger.Debug("hero located", "selector", hero.Selector, "width", hero.Rect.Width, "height", hero.Rect.Height)
	}

	frames, total, err := o.page.Screencast(ctx, window, maxHeroFrames)
	if err != nil && len(frames) == 0 {
		return err
	}
	if len(frames) == 0 {
		return errors.New("screencast produced no frames")
	}

	names := make([]string, 0, len(frames))
	for i, frame := range frames {
		name := heroFrameName(i)
		if err := o.out.WriteFile(path.Join("animations", name), frame); err != nil {
			return err
		}
		names = append(names, name)
	}
	capture.Method = "screencast"
	capture.Screenshots = names
	capture.ScreencastTotal = total
	o.logger.Info("hero screencast captured", "kept", len(frames), "received", total)
	return nil
}

// captureThemes records the initial theme and, when the page can be
// switched, the opposite one. The page is returned to its initial theme
// before the stage ends.
func (o *Orchestrator) captureThemes(ctx context.Context) (models.ThemeInfo, []models.ThemeSnapshot) {
	initial, err := o.switcher.Detect(ctx)
	if err != nil {
		o.logger.Warn("theme detection failed, assuming light", "error", err)
		initial = models.ThemeLight
	}
	info := models.ThemeInfo{
		InitialTheme:   initial,
		ThemesCaptured: []models.ThemeName{},
	}
	o.logger.Info("initial theme detected", "theme", initial)

	var snapshots []models.ThemeSnapshot
	if snap, err := o.captureTheme(ctx, initial); err != nil {
		o.logger.Warn("theme capture failed", "theme", initial, "error", err)
	} else {
		snapshots = append(snapshots, snap)
		info.ThemesCaptured = append(info.ThemesCaptured, initial)
	}

	handle, found := o.switcher.FindToggle(ctx)
	info.ToggleFound = found
	if found {
		info.ToggleInfo = &handle
		o.logger.Info("theme toggle found", "selector", handle.Selector, "tag", handle.Tag)
	}

	res, err := o.switcher.Switch(ctx, initial, handle)
	switch {
	case err != nil:
		o.logger.Warn("theme switch failed", "error", err)
	case !res.Switched:
		o.logger.Info("page does not switch theme, capturing one theme only")
	default:
		info.SwitchMethod = res.Method
		if snap, err := o.captureTheme(ctx, res.To); err != nil {
			o.logger.Warn("theme capture failed", "theme", res.To, "error", err)
		} else {
			snapshots = append(snapshots, snap)
			info.ThemesCaptured = append(info.ThemesCaptured, res.To)
		}
	}
	if err := o.switcher.Restore(ctx, res); err != nil {
		o.logger.Warn("theme restore failed", "error", err)
	}

	if err := o.out.WriteJSON("data/theme_info.json", info); err != nil {
		o.logger.Warn("write theme info failed", "error", err)
	}
	return info, snapshots
}

// captureTheme takes the breakpoint screenshots and design tokens of the
// theme currently showing.
func (o *Orchestrator) captureTheme(ctx context.Context, name models.ThemeName) (models.ThemeSnapshot, error) {
	dir := path.Join("themes", string(name))
	shots, err := o.screenshotBreakpoints(ctx, dir, o.cfg.ThemeSettle)
	if err != nil {
		return models.ThemeSnapshot{}, err
	}
	snap := models.ThemeSnapshot{Theme: name, Screenshots: shots}

	var raw models.RawStyles
	if err := evalInto(ctx, o.page, &raw, styleSamplesScript); err != nil {
		o.logger.Warn("theme style sampling failed", "theme", name, "error", err)
	} else {
		snap.Tokens = tokens.Build(raw)
		if err := o.out.WriteJSON(path.Join(dir, "design_tokens.json"), snap.Tokens); err != nil {
			o.logger.Warn("write theme tokens failed", "theme", name, "error", err)
		}
	}
	o.logger.Info("theme captured", "theme", name, "screenshots", len(shots))
	return snap, nil
}

func (o *Orchestrator) captureBreakpoints(ctx context.Context) ([]models.Screenshot, error) {
	return o.screenshotBreakpoints(ctx, "", o.cfg.BreakpointSettle)
}

// viewportResetTimeout bounds restoring the default viewport.
const viewportResetTimeout = 5 * time.Second

// screenshotBreakpoints writes a full-page screenshot per breakpoint into
// dir and restores the default viewport afterwards. A failed breakpoint is
// skipped; an error is returned only when none succeeded.
func (o *Orchestrator) screenshotBreakpoints(ctx context.Context, dir string, settle time.Duration) ([]models.Screenshot, error) {
	defer func() {
		// The stage context may already be done; the reset must still run.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), viewportResetTimeout)
		defer cancel()
		def := Breakpoints[0]
		if err := o.page.SetViewport(rctx, def.Width, def.Height); err != nil {
			o.logger.Debug("viewport reset failed", "error", err)
		}
	}()

	var (
		shots   []models.Screenshot
		lastErr error
	)
	for _, bp := range Breakpoints {
		if err := ctx.Err(); err != nil {
			return shots, err
		}
		shot, err := o.screenshotAt(ctx, bp, settle)
		if err != nil {
			o.logger.Warn("breakpoint screenshot failed", "breakpoint", bp.Name, "error", err)
			lastErr = err
			continue
		}
		rel := path.Join(dir, "screenshot_"+bp.Name+".png")
		if err := o.out.WriteFile(rel, shot); err != nil {
			lastErr = err
			continue
		}
		shots = append(shots, models.Screenshot{Breakpoint: bp.Name, Path: rel})
	}
	if len(shots) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return shots, nil
}

func (o *Orchestrator) screenshotAt(ctx context.Context, bp Breakpoint, settle time.Duration) ([]byte, error) {
	if err := o.page.SetViewport(ctx, bp.Width, bp.Height); err != nil {
		return nil, err
	}
	if err := o.wait(ctx, settle); err != nil {
		return nil, err
	}
	return o.page.Screenshot(ctx, true)
}

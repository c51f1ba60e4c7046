package overlay

import (
	"log/slog"
	"time"
)

// logInterval is the minimum spacing between repeated diagnostics for the
// same per-frame failure site. Frame-rate failure loops otherwise flood the
// log with one line per frame.
const logInterval = 5 * time.Second

// logLimiter rate-limits one diagnostic site. It is not safe for concurrent
// use; each limiter belongs to a single renderer on the render thread.
type logLimiter struct {
	last       time.Time
	suppressed int
}

// warn emits the message if the interval has elapsed, folding in how many
// occurrences were suppressed since the last emission.
func (l *logLimiter) warn(msg string, args ...any) {
	now := time.Now()
	if !l.last.IsZero() && now.Sub(l.last) < logInterval {
		l.suppressed++
		return
	}
	if l.suppressed > 0 {
		args = append(args, slog.Int("suppressed", l.suppressed))
	}
	Logger().Warn(msg, args...)
	l.last = now
	l.suppressed = 0
}

// RenderStats summarizes one render pass.
type RenderStats struct {
	// Drawn is the number of items submitted to the backend.
	Drawn int

	// Skipped counts items excluded as expected behavior: invisible,
	// untextured, or holding a stale texture reference.
	Skipped int

	// Failed counts items whose draw call failed; each failure is isolated
	// to its item and frame.
	Failed int
}

// Renderer walks the draw queue once per frame and submits one textured-quad
// draw per eligible item between a BeginBatch/EndBatch pair.
//
// The renderer never faults a frame: a begin failure aborts the pass, a
// per-item failure skips that item, an end failure is logged and dropped.
type Renderer struct {
	backend Backend

	// inFrame guards against re-entrant RenderFrame calls, which would
	// corrupt the open batch (Idle -> BatchOpen -> Idle, one cycle per
	// frame).
	inFrame bool

	beginLog   logLimiter
	drawLog    logLimiter
	endLog     logLimiter
	reenterLog logLimiter
}

// newRenderer creates a renderer. The backend is attached by Session.Init.
func newRenderer() *Renderer {
	return &Renderer{}
}

// RenderFrame draws every eligible item in ascending handle order. Items
// that are invisible, untextured, or whose texture reference has gone stale
// are silently skipped; that is expected behavior, not an error.
func (r *Renderer) RenderFrame(cache *TextureCache, queue *DrawQueue) RenderStats {
	var stats RenderStats

	if r.backend == nil {
		return stats
	}
	if r.inFrame {
		r.reenterLog.warn("re-entrant RenderFrame rejected")
		return stats
	}
	r.inFrame = true
	defer func() { r.inFrame = false }()

	if err := r.backend.BeginBatch(); err != nil {
		r.beginLog.warn("begin batch failed", "err", err)
		return stats
	}

	for _, h := range queue.handlesInOrder() {
		it := queue.items[h]
		if !it.visible || it.tex == nil || !cache.Valid(it.tex) {
			stats.Skipped++
			continue
		}

		err := r.backend.Draw(DrawCommand{
			Texture: it.tex.texture,
			Source:  it.src,
			ScaleX:  it.scaleX,
			ScaleY:  it.scaleY,
			X:       it.x,
			Y:       it.y,
			Color:   it.color,
		})
		if err != nil {
			stats.Failed++
			r.drawLog.warn("sprite draw failed", "handle", uint64(h), "err", err)
			continue
		}
		stats.Drawn++
	}

	if err := r.backend.EndBatch(); err != nil {
		r.endLog.warn("end batch failed", "err", err)
	}
	return stats
}

package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/mangascraper/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager(out io.Writer) *ProgressManager {
	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &ProgressManager{p: p}
}

// Close waits for every registered bar to complete or abort.
func (pm *ProgressManager) Close() {
	if pm == nil {
		return
	}
	pm.p.Wait()
}

// Register adds a bar for one chapter. A nil manager hands out nil handles,
// which ignore every call.
func (pm *ProgressManager) Register(prefix string, total int) *ProgressHandle {
	if pm == nil {
		return nil
	}

	h := &ProgressHandle{
		pm:     pm,
		prefix: prefix,
		total:  int64(total),
	}
	h.initBar()
	return h
}

type ProgressHandle struct {
	pm     *ProgressManager
	prefix string
	bar    *mpb.Bar

	total int64
	bytes atomic.Int64

	start   time.Time
	elapsed atomic.Int64

	final atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()

	h.bar = h.pm.p.New(
		h.total,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d pages", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.Human(h.bytes.Load())
			}),

			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					return fmt.Sprintf(" | %ds", h.elapsed.Load())
				}

				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)
}

// AddBytes records bytes written for the page in flight.
func (h *ProgressHandle) AddBytes(n int64) {
	if h == nil || h.final.Load() {
		return
	}

	h.bytes.Add(n)
}

// PageDone advances the bar by one page.
func (h *ProgressHandle) PageDone() {
	if h == nil || h.final.Load() {
		return
	}

	h.bar.Increment()
}

func (h *ProgressHandle) MarkDone() {
	if h == nil || h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.SetCurrent(h.total)
	h.bar.SetTotal(h.total, true)
}

// Abort stops the bar where it is, leaving it on screen.
func (h *ProgressHandle) Abort() {
	if h == nil || h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.Abort(false)
}

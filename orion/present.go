package orion

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

//go:generate go tool stringer -type=SurfaceError -trimprefix=SurfaceError

// SurfaceError is returned by a Renderer if a frame could not be acquired
// or presented.
type SurfaceError int

const (
	// SurfaceErrorTimeout means no frame was available in time. The frame is skipped.
	SurfaceErrorTimeout SurfaceError = iota + 1

	// SurfaceErrorOutdated means the surface changed and must be reconfigured.
	SurfaceErrorOutdated

	// SurfaceErrorLost means the surface must be reconfigured.
	SurfaceErrorLost

	// SurfaceErrorOutOfMemory is fatal.
	SurfaceErrorOutOfMemory
)

// MaxStaleFrames is the number of frames in a row that may fail with Lost or
// Outdated. The next one is fatal.
const MaxStaleFrames = 8

var ErrSurfaceNotRecovered = errors.New("surface does not recover")

func (e SurfaceError) Error() string {
	return "surface: " + e.String()
}

// SurfaceErrorOf classifies a failure to acquire a surface texture. The
// native layer only reports the status as text. Anything unrecognized is
// treated as Outdated, a lost device as Lost. The Presenter gives up after
// MaxStaleFrames of those in a row.
func SurfaceErrorOf(err error) SurfaceError {
	var surfaceErr SurfaceError
	if errors.As(err, &surfaceErr) {
		return surfaceErr
	}

	message := strings.ToLower(err.Error())
	message = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(message)

	switch {
	case strings.Contains(message, "timeout"):
		return SurfaceErrorTimeout
	case strings.Contains(message, "outofmemory"):
		return SurfaceErrorOutOfMemory
	case strings.Contains(message, "lost"):
		return SurfaceErrorLost
	default:
		return SurfaceErrorOutdated
	}
}

// Renderer produces the content of every frame on top of a ready GPU context.
type Renderer interface {
	// Resize is called after the surface was configured with a new size.
	Resize(width, height uint32)

	// RenderOrPresent renders one frame and presents it. Failures to acquire
	// or present the frame are reported as SurfaceError.
	RenderOrPresent() error
}

type PresentStats struct {
	Presented uint64
	Recovered uint64
	Skipped   uint64
}

// Presenter presents frames and recovers from transient surface failures.
// Only fatal errors are returned by PresentFrame.
type Presenter struct {
	surfaces *SurfaceManager
	renderer Renderer

	times FrameTimes
	stats PresentStats

	// Lost or Outdated frames since the last presented one
	stale int
}

func NewPresenter(surfaces *SurfaceManager, renderer Renderer) *Presenter {
	return &Presenter{
		surfaces: surfaces,
		renderer: renderer,
	}
}

func (p *Presenter) PresentFrame() error {
	err := p.renderer.RenderOrPresent()
	if err == nil {
		p.stats.Presented += 1
		p.stale = 0

		if p.times.Tick() {
			slog.Debug("Frame times",
				slog.Float64("fps", p.times.FPS()),
				slog.Duration("average", p.times.AverageDuration),
				slog.Duration("max", p.times.MaxDuration),
			)
		}

		return nil
	}

	var surfaceErr SurfaceError
	if !errors.As(err, &surfaceErr) {
		return fmt.Errorf("render frame: %w", err)
	}

	switch surfaceErr {
	case SurfaceErrorLost, SurfaceErrorOutdated:
		size := p.surfaces.LastKnownSize()

		slog.Debug("Surface is stale, reconfigure",
			slog.String("reason", surfaceErr.String()),
			slog.Int("width", int(size.Width)),
			slog.Int("height", int(size.Height)),
		)

		p.stale += 1
		if p.stale > MaxStaleFrames {
			return fmt.Errorf("present frame: %w after %d frames: %w", ErrSurfaceNotRecovered, MaxStaleFrames, err)
		}

		p.stats.Recovered += 1

		if err := p.surfaces.Recover(); err != nil {
			slog.Warn("Failed to recover surface", slog.Any("error", err))
		}

		return nil

	case SurfaceErrorTimeout:
		slog.Warn("Surface timeout")
		p.stats.Skipped += 1
		return nil

	default:
		slog.Error("Surface failed", slog.String("reason", surfaceErr.String()))
		return fmt.Errorf("present frame: %w", err)
	}
}

func (p *Presenter) Stats() PresentStats {
	return p.stats
}

func (p *Presenter) FrameTimes() FrameTimes {
	return p.times
}

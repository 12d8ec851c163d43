package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"httprule/internal/core/codec"
	"httprule/internal/pkg/logger"
)

// Execution modes of a transform run.
const (
	ModeSync   = "sync"
	ModeAsync  = "async"
	ModeStream = "stream"
)

// TransformContext carries per-run fields: one is created for every
// transform call and dropped when it completes.
type TransformContext struct {
	RunID     string
	Mode      string
	Format    codec.Format
	StartTime time.Time
	Log       *logger.Logger

	mu       sync.RWMutex
	metadata map[string]any
}

// NewTransformContext creates a context whose logger carries the run fields.
func NewTransformContext(log *logger.Logger, mode string, format codec.Format) *TransformContext {
	runID := uuid.NewString()
	return &TransformContext{
		RunID:     runID,
		Mode:      mode,
		Format:    format,
		StartTime: time.Now(),
		Log: logger.OrNop(log).With(
			zap.String("run_id", runID),
			zap.String("mode", mode),
			zap.String("format", string(format)),
		),
		metadata: make(map[string]any),
	}
}

// SetMetadata sets a metadata value (thread-safe)
func (c *TransformContext) SetMetadata(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata[key] = value
}

// GetMetadata gets a metadata value (thread-safe)
func (c *TransformContext) GetMetadata(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.metadata[key]
	return v, ok
}

// Metadata returns a copy of all metadata (thread-safe)
func (c *TransformContext) Metadata() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.metadata))
	for k, v := range c.metadata {
		out[k] = v
	}
	return out
}

// Elapsed is the time since the run started.
func (c *TransformContext) Elapsed() time.Duration {
	return time.Since(c.StartTime)
}

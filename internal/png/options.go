package png

import (
	"io"
	"log"

	"pngchunks.adpollak.net/internal/chunk"
)

type config struct {
	logger         *log.Logger
	checksums      bool
	maxChunkLength uint32
}

func defaultConfig() config {
	return config{
		logger:         log.New(io.Discard, "", 0),
		checksums:      true,
		maxChunkLength: chunk.MaxLength,
	}
}

// Option configures Parse.
type Option func(*config)

// WithLogger sends progress messages to l.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithChecksums turns CRC verification on or off. It is on by default.
func WithChecksums(verify bool) Option {
	return func(c *config) {
		c.checksums = verify
	}
}

// WithMaxChunkLength rejects chunks declaring more than n bytes of data.
// Zero restores the format limit.
func WithMaxChunkLength(n uint32) Option {
	return func(c *config) {
		c.maxChunkLength = n
	}
}

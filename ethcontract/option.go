package ethcontract

import (
	"log/slog"
)

type Option func(*Coder)

func WithLogger(log *slog.Logger) Option {
	return func(c *Coder) {
		c.log = log
	}
}

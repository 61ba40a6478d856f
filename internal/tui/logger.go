package tui

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var tuiLog zerolog.Logger = log.With().Str("module", "tui").Logger()

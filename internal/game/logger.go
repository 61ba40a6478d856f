package game

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var gameLog zerolog.Logger = log.With().Str("module", "game").Logger()

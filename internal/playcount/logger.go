package playcount

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var countLog zerolog.Logger = log.With().Str("module", "playcount").Logger()

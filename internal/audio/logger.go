package audio

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var audioLog zerolog.Logger = log.With().Str("module", "audio").Logger()

package layout

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var layoutLog zerolog.Logger = log.With().Str("module", "layout").Logger()

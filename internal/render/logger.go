package render

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var renderLog zerolog.Logger = log.With().Str("module", "render").Logger()

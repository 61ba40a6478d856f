package clipboard

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var clipLog zerolog.Logger = log.With().Str("module", "clipboard").Logger()

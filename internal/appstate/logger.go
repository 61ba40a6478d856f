package appstate

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var appLog zerolog.Logger = log.With().Str("module", "appstate").Logger()

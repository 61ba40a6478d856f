package config

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var configLog zerolog.Logger = log.With().Str("module", "config").Logger()

package scene

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var sceneLog zerolog.Logger = log.With().Str("module", "scene").Logger()

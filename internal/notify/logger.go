package notify

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var notifyLog zerolog.Logger = log.With().Str("module", "notify").Logger()

package signal

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
)

// sendOpError surfaces an engine error to the originating connection
// only. Taxonomy errors carry client-safe messages; anything else is
// logged and replaced by the generic fallback.
func (ctl *WSController) sendOpError(c *WsConn, err error, fallback string) {
	if clientSafe(err) {
		ctl.sendError(c, err.Error())
		return
	}
	log.Error().Err(err).Str("module", "signal").Msg("unexpected engine error")
	ctl.sendError(c, fallback)
}

func clientSafe(err error) bool {
	for _, known := range []error{
		core.ErrGroupNotFound,
		core.ErrGroupNotActive,
		core.ErrGroupFull,
		core.ErrAlreadyMember,
		core.ErrNotAMember,
		core.ErrRestaurantNotFound,
		core.ErrForbidden,
		core.ErrInvalidStatus,
		core.ErrCodeExhausted,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

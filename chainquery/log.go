package chainquery

import (
	"github.com/emberchain/emberd/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.CHQR)

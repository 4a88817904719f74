package signal

import (
	"github.com/emberchain/emberd/logger"
	"github.com/emberchain/emberd/util/panics"
)

var log, _ = logger.Get(logger.SubsystemTags.SIGN)
var spawn = panics.GoroutineWrapperFunc(log)

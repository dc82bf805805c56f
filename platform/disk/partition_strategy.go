package disk

import (
	"time"

	"code.cloudfoundry.org/clock"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshretry "github.com/cloudfoundry/bosh-utils/retrystrategy"
)

const (
	partitionStrategyTimeout = 2 * time.Minute
	partitionStrategyDelay   = 3 * time.Second
)

func NewPartitionStrategy(retryable boshretry.Retryable, timeService clock.Clock, logger boshlog.Logger) boshretry.RetryStrategy {
	return boshretry.NewTimeoutRetryStrategy(partitionStrategyTimeout, partitionStrategyDelay, retryable, timeService, logger)
}

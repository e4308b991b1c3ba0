// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/ledger"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/config"
)

func TestPublishWriteDeadline_CoversEveryAttempt(t *testing.T) {
	cfg := &config.Config{Ledger: config.LedgerConfig{
		RetryAttempts: 100,
		RetryMinDelay: 500 * time.Millisecond,
		RetryMaxDelay: time.Second,
	}}

	deadline := PublishWriteDeadline(cfg)

	// Every call may run to the client timeout before the next backoff.
	assert.GreaterOrEqual(t, deadline, 100*ledger.CallTimeout+99*time.Second)
}

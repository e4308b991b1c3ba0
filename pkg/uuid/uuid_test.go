// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/uuid"
)

func TestNew_Sortable(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second)
}

func TestValid(t *testing.T) {
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid(""))
}

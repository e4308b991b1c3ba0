// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

// Package pointer builds pointers to literal values for optional fields.
package pointer

// To returns a pointer to a copy of v, e.g. pointer.To(3) for an optional chapter id.
func To[T any](v T) *T {
	return &v
}

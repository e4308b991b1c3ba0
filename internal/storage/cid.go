// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package storage

import (
	"encoding/base32"
	"strings"

	"github.com/mr-tron/base58"
)

const (
	// sha2-256 multihash header: code 0x12, digest length 0x20.
	multihashSHA256 = 0x12
	sha256Length    = 0x20
)

var base32Lower = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// ValidCID checks the shape of a CIDv0 ("Qm...", base58btc) or CIDv1 ("b...", base32) identifier.
func ValidCID(cid string) bool {
	switch {
	case strings.HasPrefix(cid, "Qm") && len(cid) == 46:
		hash, err := base58.Decode(cid)
		return err == nil && len(hash) == 34 && hash[0] == multihashSHA256 && hash[1] == sha256Length

	case strings.HasPrefix(cid, "b") && len(cid) > 8:
		raw, err := base32Lower.DecodeString(cid[1:])
		// version byte 0x01 followed by codec and multihash
		return err == nil && len(raw) > 4 && raw[0] == 0x01

	default:
		return false
	}
}

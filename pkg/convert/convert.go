// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package convert parses loosely typed query values.

Malformed input falls back to a default instead of failing, which is what
the __skip and __limit parameters need. Use strconv directly when a bad
value must be reported to the caller.
*/
package convert

import "strconv"

// ToIntD parses str, returning def when it is empty or not an integer.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}

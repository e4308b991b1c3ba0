// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fileHeader = "// Copyright (c) 2026 Paras Comic. All rights reserved.\n// Author: Troon Technologies LLC\n"

// Generated table descriptors carry no header.
var headerless = []string{filepath.Join("internal", "platform", "database", "schema")}

func TestSourceFilesCarryProjectHeader(t *testing.T) {
	root := filepath.Join("..", "..")

	checked := 0
	for _, dir := range []string{"cmd", "internal", "pkg"} {
		err := filepath.WalkDir(filepath.Join(root, dir), func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() || filepath.Ext(path) != ".go" {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			for _, skip := range headerless {
				if strings.HasPrefix(rel, skip) {
					return nil
				}
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			assert.True(t, strings.HasPrefix(string(data), fileHeader), "%s has no project header", rel)
			checked++
			return nil
		})
		require.NoError(t, err)
	}

	assert.Positive(t, checked)
}

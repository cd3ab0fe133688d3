// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// maxPathLength bounds user-supplied paths
const maxPathLength = 4096

// GetConfigDir returns the lexiscan configuration directory. LEXISCAN_CONFIG_DIR
// overrides it; otherwise $XDG_CONFIG_HOME/lexiscan or the platform's user
// configuration directory is used.
func GetConfigDir() string {
	if dir := os.Getenv("LEXISCAN_CONFIG_DIR"); dir != "" {
		return NormalizePath(dir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lexiscan")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lexiscan")
	}
	return filepath.Join(".", ".lexiscan")
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetHomeConfigFile returns the legacy ~/.lexiscan.yaml location, or "" when
// the home directory is unknown
func GetHomeConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lexiscan.yaml")
}

// NormalizePath expands a leading ~ and cleans the path
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(path)
}

// ValidatePath rejects paths no file system accepts
func ValidatePath(path string) error {
	if path == "" {
		return nil // Empty path is valid
	}
	if strings.ContainsRune(path, 0) {
		return &PathValidationError{Path: path, Reason: "contains null byte"}
	}
	if len(path) > maxPathLength {
		return &PathValidationError{Path: path, Reason: "path exceeds maximum length"}
	}
	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}

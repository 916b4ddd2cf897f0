// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation utilities for values that end
// up near Cypher or SQL queries.
//
// Filter values arriving from the dashboard (department names, practice
// areas, matter ids) are always passed to the stores as bound query
// parameters, never interpolated. These validators are the second line of
// defense: they reject anything that does not look like a legitimate
// identifier before it reaches a store at all.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// matterIDPattern matches matter identifiers like "MTR-2024-1001" or plain
// numeric/UUID-ish ids coming from the relational store.
var matterIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,39}$`)

// namePattern matches human-readable filter names (departments, practice
// areas): letters, digits, spaces, ampersands and hyphens, max 64 chars.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 &._-]{0,63}$`)

// ValidateMatterID validates a matter identifier.
//
// Valid ids are 1-40 characters of letters, digits, dots, underscores and
// hyphens, starting with an alphanumeric.
//
// Example:
//
//	if err := validation.ValidateMatterID(id); err != nil {
//	    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
//	    return
//	}
func ValidateMatterID(id string) error {
	if id == "" {
		return fmt.Errorf("matter id cannot be empty")
	}
	if !matterIDPattern.MatchString(id) {
		return fmt.Errorf("invalid matter id: %q", id)
	}
	return nil
}

// SanitizeName validates and normalizes a department or practice-area
// filter value. Leading/trailing whitespace is trimmed; an empty value is
// returned as-is (meaning "no filter").
func SanitizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", nil
	}
	if !namePattern.MatchString(trimmed) {
		return "", fmt.Errorf("invalid filter value: %q", name)
	}
	return trimmed, nil
}

// ValidateNames validates multiple filter values. Returns an error listing
// every invalid value if any fail.
func ValidateNames(names []string) error {
	var invalid []string
	for _, n := range names {
		if _, err := SanitizeName(n); err != nil {
			invalid = append(invalid, n)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid filter values: %s", strings.Join(invalid, ", "))
	}
	return nil
}

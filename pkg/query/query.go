// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list filters from URL query strings.
package query

import (
	"strconv"
	"strings"
)

// OptionalInt parses an integer filter. An empty value yields nil.
func OptionalInt(val string) (*int, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

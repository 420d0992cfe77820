// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package filters implements the --filter expressions used to narrow cache
// listings.
package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/diskcache/internal/diskcache"
)

// filterRegex splits an expression into key, operator and target. Operators
// are one of = ^ ~ < > @ or /, optionally prefixed with '!'.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Keys are the entry attributes a filter may name.
var Keys = []string{"store", "key", "size", "modified", "path"}

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed expressions and unknown keys are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override.
	delim := ","
	if d, ok := os.LookupEnv("DISKCACHE_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		if !known(parts[1]) {
			msg := fmt.Sprintf("filter key not found: %s", parts[1])
			log.Error(msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}

		negate := strings.HasPrefix(parts[2], "!")
		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: strings.TrimPrefix(parts[2], "!"),
			Target:  parts[3],
		})
	}

	return filters
}

func known(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// FilterEntries returns the entries matching every expression in spec, in
// their original order.
func FilterEntries(entries []diskcache.Entry, spec string) []diskcache.Entry {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return entries
	}

	var out []diskcache.Entry
	for _, e := range entries {
		if Match(e, filters) {
			out = append(out, e)
		}
	}
	return out
}

// Match reports whether e satisfies all filters.
func Match(e diskcache.Entry, filters []Filter) bool {
	for _, filter := range filters {
		var result bool
		switch filter.Key {
		case "size":
			result = checkNumericOperand(float64(e.Size), filter)
		case "modified":
			result = checkTimeOperand(e.ModTime, filter)
		default:
			result = checkStringOperand(field(e, filter.Key), filter)
		}
		if !result {
			return false
		}
	}
	return true
}

func field(e diskcache.Entry, key string) string {
	switch key {
	case "store":
		return e.Store
	case "key":
		return e.Key
	case "path":
		return e.Path
	}
	return ""
}

// checkNumericOperand compares value against the target numerically. Only =,
// > and < are meaningful.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Target), 64)
	if err != nil {
		log.Error("invalid numeric target: " + filter.Target)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
}

// checkTimeOperand compares a modification time. The target is either an
// RFC3339 timestamp or a duration, which is taken as that long ago, so
// modified>1h means "modified within the last hour".
func checkTimeOperand(value time.Time, filter Filter) bool {
	tgt, err := time.Parse(time.RFC3339, filter.Target)
	if err != nil {
		d, derr := time.ParseDuration(filter.Target)
		if derr != nil {
			log.Error("invalid time target: " + filter.Target)
			return false
		}
		tgt = time.Now().Add(-d)
	}

	switch filter.Operand {
	case ">":
		return value.After(tgt) == !filter.Negate
	case "<":
		return value.Before(tgt) == !filter.Negate
	default:
		return checkStringOperand(value.UTC().Format(time.RFC3339), filter)
	}
}

// checkStringOperand evaluates a string comparison against value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Target) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case ">":
		return value > filter.Target == !filter.Negate
	case "<":
		return value < filter.Target == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}

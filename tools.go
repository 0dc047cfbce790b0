//go:build tools
// +build tools

// Package tools pins the code generators run by go generate (mockgen) in go.mod.
package chat_fanout

import (
	_ "go.uber.org/mock/mockgen"
)

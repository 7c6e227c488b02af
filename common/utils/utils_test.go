package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPanicsOnlyOnError(t *testing.T) {
	assert.NotPanics(t, func() {
		Check(nil, "all fine")
	})

	assert.Panics(t, func() {
		Check(errors.New("broken"), "expected failure")
	})
}

func TestAssertPanicsOnlyOnViolation(t *testing.T) {
	assert.NotPanics(t, func() {
		Assert(true, "invariant holds")
	})

	assert.Panics(t, func() {
		Assert(false, "invariant violated")
	})
}

func TestDebugMessageMergesCallerContext(t *testing.T) {
	msg := newMessage("spatialbattle", "battle over", Context{"tick": 42})

	assert.Equal(t, "spatialbattle", msg.Service)
	assert.Equal(t, "battle over", msg.Message)
	assert.Equal(t, 42, msg.Context["tick"])
	assert.NotEmpty(t, msg.Time)
}

func TestDebugMessageCallerContextWinsCollisions(t *testing.T) {
	msg := newMessage("svc", "m", Context{"hostname": "override"})

	assert.Equal(t, "override", msg.Context["hostname"])
}

package utils

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileWithLineNum(t *testing.T) {
	file := func() string { return FileWithLineNum() }()
	if !strings.Contains(file, "utils_test.go:") {
		t.Errorf("expected caller in test file, got %q", file)
	}
}

func TestCallerFrame(t *testing.T) {
	frame := func() runtime.Frame { return CallerFrame() }()
	assert.Contains(t, frame.File, "utils_test.go")
}

func TestCheckTruth(t *testing.T) {
	assert.True(t, CheckTruth("true"))
	assert.True(t, CheckTruth("", "1"))
	assert.False(t, CheckTruth("", "false", "FALSE", "0"))
}

func TestToString(t *testing.T) {
	cases := []struct {
		value    interface{}
		expected string
	}{
		{"abc", "abc"},
		{[]byte("xyz"), "xyz"},
		{int8(-3), "-3"},
		{uint64(18), "18"},
		{1.5, "1.5"},
		{float32(2), "2"},
		{true, "1"},
		{nil, ""},
		{struct{ A int }{1}, "{1}"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, ToString(c.value), "%#v", c.value)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		value    interface{}
		expected int64
		ok       bool
	}{
		{7, 7, true},
		{uint16(9), 9, true},
		{float64(4), 4, true},
		{4.5, 0, false},
		{" 42 ", 42, true},
		{[]byte("-1"), -1, true},
		{"x", 0, false},
		{false, 0, true},
		{nil, 0, false},
	}
	for _, c := range cases {
		v, ok := ToInt64(c.value)
		assert.Equal(t, c.ok, ok, "%#v", c.value)
		if c.ok {
			assert.Equal(t, c.expected, v, "%#v", c.value)
		}
	}
}

package utils

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

var sourceRoot string

func init() {
	_, file, _, _ := runtime.Caller(0)
	sourceRoot = sourceDir(file)
}

// sourceDir returns the module root for a file in its utils package, widening
// to the owner directory when the module sits in a go-dbal checkout.
func sourceDir(file string) string {
	dir := filepath.Dir(filepath.Dir(file))

	s := filepath.Dir(dir)
	if filepath.Base(s) != "go-dbal" {
		s = dir
	}
	return filepath.ToSlash(s) + "/"
}

func internal(file string) bool {
	return strings.HasPrefix(file, sourceRoot) && !strings.HasSuffix(file, "_test.go")
}

// FileWithLineNum return the file name and line number of the first caller outside this module
func FileWithLineNum() string {
	// the second caller usually from internal, so set i start from 2
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if ok && !internal(file) {
			return file + ":" + strconv.FormatInt(int64(line), 10)
		}
	}

	return ""
}

// CallerFrame returns the first frame outside this module
func CallerFrame() runtime.Frame {
	pcs := [15]uintptr{}
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !internal(frame.File) {
			return frame
		}
		if !more {
			return frame
		}
	}
}

// CheckTruth check string true or not
func CheckTruth(vals ...string) bool {
	for _, val := range vals {
		if val != "" && !strings.EqualFold(val, "false") && val != "0" {
			return true
		}
	}
	return false
}

// Contains reports whether elem is in elems
func Contains(elems []string, elem string) bool {
	for _, e := range elems {
		if elem == e {
			return true
		}
	}
	return false
}

// ToString formats scalar values the way a driver would return them as text
func ToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}

// ToInt64 converts integers, floats without fraction and numeric strings
func ToInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		if float32(int64(v)) == v {
			return int64(v), true
		}
	case float64:
		if float64(int64(v)) == v {
			return int64(v), true
		}
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	case []byte:
		return ToInt64(string(v))
	}
	return 0, false
}

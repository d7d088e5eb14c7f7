// Package debug exposes the build-time debug flag and stack helpers used to
// enrich witness-time constraint failures.
package debug

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

func Stack() string {
	var sbb strings.Builder
	WriteStack(&sbb)
	return sbb.String()
}

// WriteStack writes the current call stack, stopping at the first frame whose
// function name ends in Define as that is where circuit user code starts.
func WriteStack(sbb *strings.Builder) {
	var pc [10]uintptr
	n := runtime.Callers(3, pc[:])
	if n == 0 {
		return
	}
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		fe := strings.Split(frame.Function, "/")
		function := fe[len(fe)-1]
		file := frame.File

		if !Debug {
			if strings.Contains(function, "runtime.gopanic") {
				continue
			}
			if strings.Contains(file, "sigil/signal") {
				continue
			}
			file = filepath.Base(file)
		}

		sbb.WriteString(function)
		sbb.WriteByte('\n')
		sbb.WriteByte('\t')
		sbb.WriteString(file)
		sbb.WriteByte(':')
		sbb.WriteString(strconv.Itoa(frame.Line))
		sbb.WriteByte('\n')
		if !more {
			break
		}
		if strings.HasSuffix(function, "Define") {
			break
		}
	}
}

package shared

import (
	"fmt"
	"os"
)

// DebugEnv enables trace output of the resolution pipeline.
const DebugEnv = "TAGMETA_DEBUG"

var logFn func(format string, args []interface{})

func init() {
	if os.Getenv(DebugEnv) == "" {
		logFn = func(format string, args []interface{}) {}
	} else {
		logFn = func(format string, args []interface{}) {
			fmt.Printf("[tagmeta] "+format+"\n", args...)
		}
	}
}

func Log(message string, args ...interface{}) {
	logFn(message, args)
}

package tools

import (
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
)

var isEnabled = true
var printTimestamp = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func EnableLoggerTimestamp() {
	printTimestamp = true
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// Prints progress messages on stdout. Messages are mirrored to the glog info log.
func LogOutput(val ...interface{}) {
	glog.V(1).Infoln(val...)
	if !isEnabled {
		return
	}
	if printTimestamp {
		fmt.Fprint(os.Stdout, "["+time.Now().Format("2006-01-02 15.04:05.000")+"] ")
	}
	fmt.Fprintln(os.Stdout, val...)
}

package main

import (
	"os"
	"runtime/debug"

	"github.com/voltactivedata/voltdemo/cmd/voltdemo/commands"

	llog "github.com/sirupsen/logrus"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	llog.SetOutput(os.Stdout)

	formatter := new(llog.TextFormatter)
	formatter.TimestampFormat = "Jan _2 15:04:05.000"
	formatter.FullTimestamp = true
	formatter.ForceColors = true
	llog.SetFormatter(formatter)

	defer func() {
		if r := recover(); r != nil {
			llog.Errorf("main: panic caught: '%v'\n\nstack:\n%s\n\n",
				r,
				string(debug.Stack()))
		}
	}()

	commands.UpdateBuildVersion(version, commit, date)
	commands.Execute()
}

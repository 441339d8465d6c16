package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

type App = cli.App
type Command = cli.Command
type Context = cli.Context

type Flag = cli.Flag
type StringFlag = cli.StringFlag
type StringSliceFlag = cli.StringSliceFlag
type BoolFlag = cli.BoolFlag
type IntFlag = cli.IntFlag
type PathFlag = cli.PathFlag

func Info(a ...any) {
	fmt.Println(a...)
}

func Infof(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}

func Error(a ...any) {
	fmt.Fprintln(os.Stderr, a...)
}

func Fatal(a ...any) {
	Error(a...)
	os.Exit(1)
}

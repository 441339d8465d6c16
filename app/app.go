package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/driftlab/courier/pkg/cli"
)

var RecursiveFlag = &cli.BoolFlag{
	Name:    "recursive",
	Aliases: []string{"r"},
	Usage:   "include changes in subdirectories",
}

func Recursive(c *cli.Context) bool {
	return c.Bool(RecursiveFlag.Name)
}

func Dir(c *cli.Context) (string, error) {
	path := c.Args().First()

	if path == "" {
		return os.Getwd()
	}

	info, err := os.Stat(path)

	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		return "", errors.New("path is not a directory")
	}

	return filepath.Abs(path)
}

func MustDir(c *cli.Context) string {
	path, err := Dir(c)

	if err != nil {
		cli.Fatal(err)
	}

	return path
}

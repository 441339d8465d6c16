package archive

import (
	"errors"
	"path/filepath"

	"github.com/driftlab/courier/pkg/cli"

	zip "github.com/driftlab/courier/pkg/archive"
)

var OutputFlag = &cli.PathFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "path of the archive to create",
	Value:   "courier.zip",
}

var RevealFlag = &cli.BoolFlag{
	Name:  "reveal",
	Usage: "open the folder containing the archive",
}

var Command = &cli.Command{
	Name:  "archive",
	Usage: "bundle files into a zip archive",

	ArgsUsage: "<file>...",

	Flags: []cli.Flag{
		OutputFlag,
		RevealFlag,
	},

	Action: func(c *cli.Context) error {
		files := c.Args().Slice()

		if len(files) == 0 {
			return errors.New("no input files")
		}

		return runArchive(c.Path(OutputFlag.Name), files, c.Bool(RevealFlag.Name))
	},
}

func runArchive(output string, files []string, reveal bool) error {
	info, err := zip.Create(output, files)

	if err != nil {
		return err
	}

	cli.Infof("created %s (%d files, %d bytes)", info.Path, info.Files, info.Size)

	if reveal {
		path, err := filepath.Abs(info.Path)

		if err != nil {
			return err
		}

		return cli.Open(filepath.Dir(path))
	}

	return nil
}

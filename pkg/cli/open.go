package cli

import (
	"github.com/skratchdot/open-golang/open"
)

func Open(target string) error {
	return open.Run(target)
}

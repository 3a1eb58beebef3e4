// Command skeletontrail renders skeleton trails from a sensor stream.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

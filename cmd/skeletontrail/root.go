package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "skeletontrail",
		Short:         "Render skeleton trails with a gesture-driven bone colour",
		Long:          "skeletontrail reads skeleton frames from a sensor, keeps a short history of the tracked body, and draws it as an offset trail whose bone colour follows the height of the right hand.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

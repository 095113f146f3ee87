package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in bramble's version
	VersionMajor = 0
	// VersionMinor is the minor number in bramble's version
	VersionMinor = 0
	// VersionPatch is the patch number in bramble's version
	VersionPatch = 1
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of bramble",
		Long:  `All software has versions. This is bramble's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bramble v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}

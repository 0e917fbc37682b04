package main

import (
	"runtime/debug"

	"github.com/freshext/freshext/cmd"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/freshext/freshext/internal/util"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// goreleaser will set version using ldflags to the latest tag (eg. v0.0.12)
	if version == "dev" {
		// if dev use git sha (build info is only present from go build not go run)
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					version = s.Value
				}
			}
		}
	}
	cmd.Version = version
	cmd.Commit = commit
	cmd.Date = date
	errsystem.Version = version
	util.Version = version
	util.Commit = commit
	cmd.Execute()
}

package main

import (
	"context"
	"os"

	"translized/src/cli"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}

	os.Exit(cli.Execute(context.Background(), cli.NewUploadCmd(info), os.Args[1:]))
}

package main

import (
	"flag"
	"fmt"
	"os"

	"mesh-viewer/internal/app"
	"mesh-viewer/internal/logger"
	"mesh-viewer/internal/meshio"
	"mesh-viewer/internal/render"
	"mesh-viewer/internal/viewconfig"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file.ply | file.pcd]\n\n", os.Args[0])
	fmt.Fprintln(flag.CommandLine.Output(), "Shows a mesh (.ply) or point cloud (.pcd). Without a file a unit sphere is shown.")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	logs, log := logger.New(logger.Options{Level: levelFlag.value, File: *logFileFlag})
	defer logs.Close()

	prefs, created, err := viewconfig.Ensure(*configFlag)
	if err != nil {
		log.Warn("Using default viewer preferences", "err", err)
	} else if created {
		log.Info("Wrote default viewer preferences", "path", *configFlag)
	}

	a := app.New(log, meshio.NewReader(log), render.New(prefs, log, logs.Lines))
	a.Auto = *autoFlag
	a.Run(flag.Args())
}

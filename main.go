/*
 * This file is part of the Go Cesium Point Cloud Tiler distribution (https://github.com/mfbonfigli/gocesiumtiler).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ecopia-map/geo_reprojector/internal/config"
	"github.com/ecopia-map/geo_reprojector/internal/converters/builtin_coordinate_converter"
	"github.com/ecopia-map/geo_reprojector/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/geo_reprojector/internal/reproject"
	"github.com/ecopia-map/geo_reprojector/pkg"
	"github.com/ecopia-map/geo_reprojector/pkg/engine_manager/std_engine_manager"
	"github.com/ecopia-map/geo_reprojector/tools"
	"github.com/golang/glog"
)

const VERSION = "0.4.0"

const logo = `
                                             _           _
  __ _  ___  ___    _ __ ___ _ __  _ __ ___ (_) ___  ___| |_ ___  _ __
 / _  |/ _ \/ _ \  | '__/ _ \ '_ \| '__/ _ \| |/ _ \/ __| __/ _ \| '__|
| (_| |  __/ (_) | | | |  __/ |_) | | | (_) | |  __/ (__| || (_) | |
 \__, |\___|\___/  |_|  \___| .__/|_|  \___// |\___|\___|\__\___/|_|
  __| | GeoJSON coordinate |_| reprojection |__/ written in golang
 |___/  Copyright YYYY - Ecopia Map
`

func main() {
	// glog writes to files by default, the tool reports on the console
	flag.Set("logtostderr", "true")
	defer glog.Flush()

	flagsGlobal := tools.ParseFlagsGlobal()
	glog.V(1).Infoln(tools.FmtJSONString(flagsGlobal))

	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	cfg, err := config.Load(*flagsGlobal.Config)
	if err != nil {
		glog.Exitf("Error loading configuration: %v", err)
	}

	args := flag.Args()
	if len(args) == 0 {
		glog.Exit("Please specify a subcommand [convert|crs].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandConvert:
		mainCommandConvert(args, cfg)
	case tools.CommandCrs:
		mainCommandCrs(args, cfg)
	default:
		glog.Exitf("Unrecognized command [%q]. Command must be one of [convert|crs]", cmd)
	}
}

func mainCommandConvert(args []string, cfg *config.Config) {
	// Retrieve command line args
	flags := tools.ParseFlagsForCommandConvert(args, cfg)

	// Prints the command line flag description
	if *flags.Help {
		showHelp()
		return
	}

	if *flags.Version {
		printVersion()
		return
	}

	// set logging and timestamp logging
	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	reprojectFlags := flags.ReprojectFlags

	// Put args inside a ReprojectOptions struct
	opts := reproject.ReprojectOptions{
		Source:              strings.TrimSpace(*reprojectFlags.Source),
		Target:              strings.TrimSpace(*reprojectFlags.Target),
		Engine:              reproject.ParseEngine(*reprojectFlags.Engine),
		FailureMode:         reproject.ParseFailureMode(*reprojectFlags.FailureMode),
		Workers:             *reprojectFlags.Workers,
		PoolMode:            reproject.ParsePoolMode(*reprojectFlags.PoolMode),
		PoolInitialCapacity: *reprojectFlags.PoolCapacity,
		SimplifyTolerance:   *reprojectFlags.SimplifyTolerance,
		Precision:           *reprojectFlags.Precision,
		Command:             tools.CommandConvert,
		ConvertOptions: &reproject.ConvertOptions{
			Input:            *flags.Input,
			Output:           *flags.Output,
			FolderProcessing: *flags.FolderProcessing,
			Recursive:        *flags.Recursive,
			OutputFormat:     reproject.ParseOutputFormat(*flags.Format),
			MetricsFile:      *flags.MetricsFile,
		},
	}

	// Validate ReprojectOptions
	if msg, res := validateOptionsForCommandConvert(&opts); !res {
		glog.Exit("Error parsing input parameters: " + msg)
	}
	glog.V(1).Infoln(tools.FmtJSONString(opts))

	// Starts the reprojector
	defer timeTrack(time.Now(), "reprojection")
	err := pkg.NewReprojector(tools.NewStandardFileFinder(), std_engine_manager.NewEngineManager(&opts)).RunReprojector(&opts)

	if err != nil {
		glog.Exit("Error while reprojecting: ", err)
	} else {
		tools.LogOutput("Conversion Completed")
	}
}

// Validates the input options provided to the command line tool checking
// that the input file/folder exists and every enumerated value was recognized
func validateOptionsForCommandConvert(opts *reproject.ReprojectOptions) (string, bool) {
	if _, err := os.Stat(opts.ConvertOptions.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}
	if opts.ConvertOptions.Output == "" {
		return "output folder is required", false
	}
	if opts.Source == "" || opts.Target == "" {
		return "source and target coordinate systems are required", false
	}

	if opts.Engine == "" {
		return "engine should be either PROJ4 or BUILTIN", false
	}
	if opts.FailureMode == "" {
		return "failure-mode should be either FAIL_FAST or PARTIAL", false
	}
	if opts.PoolMode == "" {
		return "pool should be one of shared, per-call or off", false
	}
	if opts.ConvertOptions.OutputFormat == "" {
		return "format should be either GEOJSON or WKT", false
	}

	if opts.Workers < 1 {
		return "workers must be at least 1", false
	}
	if opts.PoolInitialCapacity < 0 {
		return "pool-capacity cannot be negative", false
	}
	if opts.SimplifyTolerance < 0 {
		return "simplify cannot be negative", false
	}

	return "", true
}

// Lists the coordinate systems the selected engine resolves by identifier
func mainCommandCrs(args []string, cfg *config.Config) {
	flags := tools.ParseFlagsForCommandCrs(args, cfg)

	if *flags.Help {
		showHelp()
		return
	}

	var systems []string
	switch reproject.ParseEngine(*flags.Engine) {
	case reproject.EngineBuiltin:
		systems = builtin_coordinate_converter.NewBuiltinEngineFactory().KnownSystems()
	case reproject.EngineProj4:
		systems = proj4_coordinate_converter.NewProj4EngineFactory().KnownSystems()
	default:
		glog.Exitf("Unrecognized engine [%q]. Engine must be one of [PROJ4|BUILTIN]", *flags.Engine)
	}

	sort.Strings(systems)
	for _, system := range systems {
		fmt.Println(system)
	}
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("GeoReprojector is a tool that converts the coordinates of GeoJSON documents from one coordinate reference system to another")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: georeprojector [global flags] convert|crs [command flags]")
	fmt.Println("Run a command with -help to list its flags.")
	fmt.Println("")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}

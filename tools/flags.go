package tools

import (
	"flag"

	"github.com/ecopia-map/geo_reprojector/internal/config"
	"github.com/golang/glog"
)

const (
	CommandConvert = "convert"
	CommandCrs     = "crs"
)

type FlagsGlobal struct {
	Help    *bool   `json:"help"`
	Version *bool   `json:"version"`
	Config  *string `json:"config"`
}

type ReprojectFlags struct {
	Source            *string `json:"source"`
	Target            *string `json:"target"`
	Engine            *string `json:"engine"`
	FailureMode       *string `json:"failure_mode"`
	Workers           *int    `json:"workers"`
	PoolMode          *string `json:"pool_mode"`
	PoolCapacity      *int    `json:"pool_capacity"`
	SimplifyTolerance *float64
	Precision         *int
}

type FlagsForCommandConvert struct {
	ReprojectFlags
	Input            *string
	Output           *string
	FolderProcessing *bool
	Recursive        *bool
	Format           *string
	MetricsFile      *string
	Silent           *bool
	LogTimestamp     *bool
	Help             *bool
	Version          *bool
}

type FlagsForCommandCrs struct {
	Engine *string
	Help   *bool
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	// -v belongs to glog
	version := defineBoolFlag("version", "", false, "Displays the version of georeprojector.")
	configFile := defineStringFlag("config", "c", "", "Configuration file providing the defaults of the command flags.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
		Config:  configFile,
	}
}

// Parses the flags of the convert command. Defaults come from cfg.
func ParseFlagsForCommandConvert(args []string, cfg *config.Config) FlagsForCommandConvert {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-convert", flag.ExitOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input GeoJSON file/folder.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output folder where to write the converted documents.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all .geojson/.json files from input folder. Input must be a folder if specified")
	recursive := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all GeoJSON files inside the subfolders")
	reprojectFlags := defineReprojectFlags(flagCommand, cfg)
	format := defineStringFlagCommand(flagCommand, "format", "", cfg.Output.Format, "Output format, can be 'GEOJSON' or 'WKT'. WKT writes one geometry per line.")
	metricsFile := defineStringFlagCommand(flagCommand, "metrics-file", "", cfg.Output.MetricsFile, "Writes the run metrics in Prometheus text format to this file.")

	silent := defineBoolFlagCommand(flagCommand, "silent", "s", cfg.Log.Silent, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "", cfg.Log.Timestamp, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")
	version := defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of georeprojector.")

	flagCommand.Parse(args)

	return FlagsForCommandConvert{
		ReprojectFlags:   reprojectFlags,
		Input:            input,
		Output:           output,
		FolderProcessing: folderProcessing,
		Recursive:        recursive,
		Format:           format,
		MetricsFile:      metricsFile,
		Silent:           silent,
		LogTimestamp:     logTimestamp,
		Help:             help,
		Version:          version,
	}
}

func ParseFlagsForCommandCrs(args []string, cfg *config.Config) FlagsForCommandCrs {
	flagCommand := flag.NewFlagSet("command-crs", flag.ExitOnError)

	engine := defineStringFlagCommand(flagCommand, "engine", "", cfg.Transform.Engine, "Transformation engine whose coordinate systems are listed, can be 'PROJ4' or 'BUILTIN'.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandCrs{
		Engine: engine,
		Help:   help,
	}
}

func defineReprojectFlags(flagCommand *flag.FlagSet, cfg *config.Config) ReprojectFlags {
	return ReprojectFlags{
		Source:            defineStringFlagCommand(flagCommand, "source", "s_srs", cfg.Transform.Source, "Coordinate system of the input: EPSG code (EPSG:4326, urn:ogc:def:crs:EPSG::4326, 4326) or proj.4 definition."),
		Target:            defineStringFlagCommand(flagCommand, "target", "t_srs", cfg.Transform.Target, "Coordinate system of the output, same forms as -source."),
		Engine:            defineStringFlagCommand(flagCommand, "engine", "e", cfg.Transform.Engine, "Transformation engine, can be 'PROJ4' or 'BUILTIN'. BUILTIN only knows EPSG:4326, EPSG:3857 and EPSG:3395."),
		FailureMode:       defineStringFlagCommand(flagCommand, "failure-mode", "", cfg.Transform.FailureMode, "Can be 'FAIL_FAST' or 'PARTIAL'. 'FAIL_FAST' stops at the first feature that cannot be converted. 'PARTIAL' skips it and reports it."),
		Workers:           defineIntFlagCommand(flagCommand, "workers", "w", cfg.Transform.Workers, "Number of goroutines converting the features of a collection. 1 converts sequentially."),
		PoolMode:          defineStringFlagCommand(flagCommand, "pool", "", cfg.Pool.Mode, "Coordinate buffer reuse, can be 'shared', 'per-call' or 'off'."),
		PoolCapacity:      defineIntFlagCommand(flagCommand, "pool-capacity", "", cfg.Pool.InitialCapacity, "Initial capacity of pooled coordinate buffers."),
		SimplifyTolerance: defineFloat64FlagCommand(flagCommand, "simplify", "", cfg.Transform.SimplifyTolerance, "Douglas-Peucker tolerance in source units applied before conversion. 0 disables simplification."),
		Precision:         defineIntFlagCommand(flagCommand, "precision", "p", cfg.Transform.Precision, "Number of decimal places kept in the output coordinates. Negative keeps full precision."),
	}
}

func defineStringFlag(name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flag.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

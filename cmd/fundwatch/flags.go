package main

import "flag"

type AppFlags struct {
	ConfigFile string
	SourceURL  string
	StateFile  string
	DryRun     bool
}

func ParseFlags() AppFlags {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	sourceURL := flag.String("source", "", "Source URL to monitor (overrides config file if set)")
	stateFile := flag.String("state", "", "Path to the persisted state file (overrides config file if set)")
	dryRun := flag.Bool("dry-run", false, "Classify entries and log, without sending notifications or persisting state")

	flag.Parse()

	flags := AppFlags{
		SourceURL: *sourceURL,
		StateFile: *stateFile,
		DryRun:    *dryRun,
	}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	return flags
}

package main

import (
	"fmt"
	"strings"

	"github.com/aasmall/diceval/lib/dicelang"
	"github.com/aasmall/diceval/lib/envreader"
)

const (
	treeMode = "tree"
	flatMode = "flat"
)

type cliConfig struct {
	defaultFace int64
	mode        string
	numberWords bool
	color       bool
	seed        int64
	debug       bool
	projectID   string
	logName     string
	local       bool
}

func getConfig(opts ...envreader.EnvReaderOption) (*cliConfig, error) {
	configReader := envreader.NewEnvReader(opts...)
	if configReader.ConfigError != nil {
		return nil, configReader.ConfigError
	}
	config := &cliConfig{
		defaultFace: configReader.GetEnvIntOpt("DICEVAL_DEFAULT_FACE", dicelang.DefaultFace),
		mode:        configReader.GetEnvOptDefault("DICEVAL_MODE", treeMode),
		numberWords: configReader.GetEnvBoolOpt("DICEVAL_NUMBER_WORDS"),
		color:       configReader.GetEnvBoolOpt("DICEVAL_COLOR"),
		seed:        configReader.GetEnvIntOpt("DICEVAL_SEED", 0),
		debug:       configReader.GetEnvBoolOpt("DEBUG"),
		projectID:   configReader.GetEnvOpt("PROJECT_ID"),
		logName:     configReader.GetEnvOptDefault("LOG_NAME", "diceval"),
		local:       configReader.GetEnvBoolOpt("LOCAL_LOGGING"),
	}
	// a mounted secret, read only when PROJECT_ID is unset
	if path := configReader.GetEnvOpt("PROJECT_ID_FILE"); path != "" && config.projectID == "" {
		config.projectID = strings.TrimSpace(configReader.GetFromFile(path))
	}
	if configReader.Errors {
		return nil, fmt.Errorf("could not gather environment variables. Failed variables: %v", configReader.MissingKeys)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *cliConfig) validate() error {
	if c.mode != treeMode && c.mode != flatMode {
		return fmt.Errorf("unknown mode %q, want %q or %q", c.mode, treeMode, flatMode)
	}
	if c.defaultFace < 1 || c.defaultFace > dicelang.MaxFace {
		return fmt.Errorf("default face %d is outside [1, %d]", c.defaultFace, dicelang.MaxFace)
	}
	return nil
}

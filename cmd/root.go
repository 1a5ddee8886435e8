// Copyright 2026 The ntfs-parse Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd wires the ntfsparse CLI: a Cobra command tree bound to the
// package cfg's Viper flags, with a YAML config-file escape hatch.
package cmd

import (
	"fmt"
	"os"

	"github.com/NTFSparse/ntfs-parse/cfg"
	"github.com/NTFSparse/ntfs-parse/internal/logger"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	bindErr       error
	configFileErr error
	unmarshalErr  error

	// Config is the fully bound, not-yet-rationalized configuration; each
	// subcommand rationalizes and validates it in its own RunE, after
	// cobra.OnInitialize has run. It starts from cfg.GetDefaultConfig().
	Config = cfg.GetDefaultConfig()
)

// Exit codes, per the tool's external-interface contract: 0 on a clean
// parse, 1 on a fatal/structural error, 2 when the run completed but
// skipped at least one malformed record.
const (
	ExitOK                = 0
	ExitFatal             = 1
	ExitCompletedWithSkips = 2
)

var rootCmd = &cobra.Command{
	Use:   "ntfsparse",
	Short: "Decode and correlate NTFS forensic artifacts ($MFT, $LogFile, $UsnJrnl)",
	Long: `ntfsparse decodes the Master File Table, the $LogFile transaction log,
and the $UsnJrnl change journal out of a raw NTFS image (or pre-extracted
streams), and joins $UsnJrnl records to the $LogFile transactions that
produced them.`,
}

// Execute runs the root command, exiting the process with ExitFatal on any
// top-level Cobra/config error. Subcommands exit directly via os.Exit with
// their own resolved code on success paths that produced diagnostics.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFatal)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "Path to a YAML config file overriding flag defaults.")
	bindErr = cfg.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(bootsectorCmd)
	rootCmd.AddCommand(mftCmd)
	rootCmd.AddCommand(logfileCmd)
	rootCmd.AddCommand(usnjrnlCmd)
	rootCmd.AddCommand(historyCmd)
}

func initConfig() {
	// cfg.Config names its keys through yaml struct tags.
	useYamlTags := func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }
	if cfgFile == "" {
		unmarshalErr = viper.Unmarshal(&Config, useYamlTags)
		return
	}
	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		configFileErr = fmt.Errorf("reading config file: %w", err)
		return
	}
	unmarshalErr = viper.Unmarshal(&Config, useYamlTags)
}

// prepareConfig runs the bind-error -> config-file-error -> unmarshal-error
// -> rationalize -> validate sequence every subcommand performs before
// touching an image, mirroring the teacher's rootCmd.RunE ordering.
func prepareConfig() (*cfg.Config, error) {
	if bindErr != nil {
		return nil, bindErr
	}
	if configFileErr != nil {
		return nil, configFileErr
	}
	if unmarshalErr != nil {
		return nil, unmarshalErr
	}
	if err := cfg.Rationalize(&Config); err != nil {
		return nil, err
	}
	if err := cfg.ValidateConfig(&Config); err != nil {
		return nil, err
	}
	if _, err := logger.Init(Config.Logging); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return &Config, nil
}

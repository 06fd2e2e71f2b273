/*
Copyright © 2025 Termweave Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "termweave",
	Short: "Glossary-preserving machine translation",
	Long: `A CLI that keeps domain-specific terminology intact across machine
translation. Glossary terms found in the source text are swapped for
translation-inert placeholders before the external service is called, and
their known-correct translations are restored afterward.

Glossaries are directories of CSV files named {domain}_terms_{language}.csv
with columns id, term, translation.

Use "termweave translate --help" for translation options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("glossary-dir", "./glossaries", "Directory of glossary CSV files")
	rootCmd.PersistentFlags().String("db", "./data/termweave.db", "Database path for translation memory")

	// Flags may also come from the environment: TERMWEAVE_GLOSSARY_DIR, TERMWEAVE_DB.
	viper.SetEnvPrefix("TERMWEAVE")
	viper.AutomaticEnv()
	viper.BindPFlag("glossary_dir", rootCmd.PersistentFlags().Lookup("glossary-dir"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
}

// glossaryDir returns the configured glossary directory (flag or env).
func glossaryDir() string {
	return viper.GetString("glossary_dir")
}

// dbPath returns the configured translation memory path (flag or env).
func dbPath() string {
	return viper.GetString("db")
}

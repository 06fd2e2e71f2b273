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
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/termweave/termweave/internal/glossary"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Inspect the loaded terminology glossaries",
	Long: `List languages, domains, and terms of the glossary CSV files in the
configured glossary directory (--glossary-dir or TERMWEAVE_GLOSSARY_DIR).`,
}

var glossaryLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages with at least one glossary",
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := glossary.LoadDir(glossaryDir())
		if err != nil {
			return fmt.Errorf("failed to load glossaries: %w", err)
		}

		langs := idx.Languages()
		if len(langs) == 0 {
			fmt.Println("No glossaries found.")
			return nil
		}
		fmt.Println(strings.Join(langs, "\n"))
		return nil
	},
}

var glossaryDomainsLang string

var glossaryDomainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List glossary domains",
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := glossary.LoadDir(glossaryDir())
		if err != nil {
			return fmt.Errorf("failed to load glossaries: %w", err)
		}

		domains := idx.Domains(glossaryDomainsLang)
		if len(domains) == 0 {
			fmt.Println("No domains found.")
			return nil
		}
		fmt.Println(strings.Join(domains, "\n"))
		return nil
	},
}

var (
	glossaryTermsLang   string
	glossaryTermsDomain string
)

var glossaryTermsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List glossary entries for a language",
	Long: `List glossary entries for a language, in the longest-match-first order
the matcher applies them. Omit --domain to merge all domains.

Example:
  termweave glossary terms --language twi --domain agric`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if glossaryTermsLang == "" {
			return fmt.Errorf("--language flag is required")
		}

		idx, err := glossary.LoadDir(glossaryDir())
		if err != nil {
			return fmt.Errorf("failed to load glossaries: %w", err)
		}

		entries := idx.EntriesFor(glossaryTermsLang, glossaryTermsDomain)
		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDOMAIN\tTERM\tTRANSLATION")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Domain, e.Term, e.Translation)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(glossaryCmd)

	glossaryDomainsCmd.Flags().StringVarP(&glossaryDomainsLang, "language", "l", "", "Filter by language code")

	glossaryTermsCmd.Flags().StringVarP(&glossaryTermsLang, "language", "l", "", "Language code (required)")
	glossaryTermsCmd.Flags().StringVarP(&glossaryTermsDomain, "domain", "d", "", "Filter by domain")

	glossaryCmd.AddCommand(glossaryLanguagesCmd)
	glossaryCmd.AddCommand(glossaryDomainsCmd)
	glossaryCmd.AddCommand(glossaryTermsCmd)
}

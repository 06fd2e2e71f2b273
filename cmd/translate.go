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
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/termweave/termweave/internal"
	"github.com/termweave/termweave/internal/detector"
	"github.com/termweave/termweave/internal/glossary"
	"github.com/termweave/termweave/internal/pipeline"
	"github.com/termweave/termweave/internal/store"
)

var (
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string
	domain     string

	serviceName   string
	credentials   string
	mymemoryEmail string
	libreURL      string
	libreKey      string

	noCache   bool
	lineBatch bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text with glossary terms preserved",
	Long: `Translate text while substituting glossary terms with their fixed
target-language translations.

The text comes from the positional argument, --input, or stdin, in that
order of preference. Glossary entries are looked up by target language and
optional domain; a language or domain with no glossary degrades to a plain
pass-through translation.

Examples:
  termweave translate "The abattoir is closed" -t twi -d agric
  termweave translate -i report.txt -o report.twi.txt -t twi
  cat lines.txt | termweave translate -t twi --lines`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}

		ctx := context.Background()

		idx, err := glossary.LoadDir(glossaryDir())
		if err != nil {
			return fmt.Errorf("failed to load glossaries: %w", err)
		}

		svc, err := buildService(serviceName, credentials, mymemoryEmail, libreURL, libreKey)
		if err != nil {
			return err
		}

		var popts []pipeline.Option
		if sourceLang == "auto" {
			popts = append(popts, pipeline.WithDetector(detector.New()))
		}
		tr := pipeline.New(idx, svc, popts...)

		opts := pipeline.Options{
			SourceLang: sourceLang,
			TargetLang: targetLang,
			Domain:     domain,
		}
		if opts.SourceLang == "auto" {
			opts.SourceLang = ""
		}

		var db *store.Store
		if !noCache && dbPath() != "" {
			db, err = store.New(dbPath())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
		}

		if lineBatch {
			return runLineBatch(ctx, tr, text, opts)
		}

		if db != nil {
			if cached, terms, found, cacheErr := db.GetCachedTranslation(ctx, text, opts.SourceLang, targetLang, domain); cacheErr == nil && found {
				fmt.Fprintf(os.Stderr, "Using cached translation (%d terms)\n", len(terms))
				return writeOutput(cached)
			}
		}

		result, err := tr.Translate(ctx, text, opts)
		if err != nil {
			return err
		}

		if db != nil {
			reqID := uuid.New().String()
			_ = db.SaveRequest(ctx, internal.TranslationRequest{
				ID:         reqID,
				SourceText: text,
				SourceLang: result.SourceLang,
				TargetLang: result.TargetLang,
				Domain:     domain,
				Timestamp:  time.Now(),
			})
			_ = db.SaveToMemory(ctx, text, opts.SourceLang, targetLang, domain, result.Text, result.TermsUsed, svc.Name())
		}

		if len(result.TermsUsed) > 0 {
			fmt.Fprintf(os.Stderr, "Glossary terms preserved: %s\n", strings.Join(result.TermsUsed, ", "))
		}
		return writeOutput(result.Text)
	},
}

// runLineBatch treats every non-empty input line as an independent text.
func runLineBatch(ctx context.Context, tr *pipeline.Translator, text string, opts pipeline.Options) error {
	var texts []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			texts = append(texts, line)
		}
	}

	results, err := tr.TranslateBatch(ctx, texts, opts)
	if err != nil {
		return err
	}

	var out strings.Builder
	for _, r := range results {
		out.WriteString(r.Text)
		out.WriteString("\n")
	}
	return writeOutput(out.String())
}

// readInput resolves the source text: positional argument, --input file, or
// stdin, in that order.
func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input text: pass an argument, --input, or pipe to stdin")
	}
	return string(data), nil
}

func writeOutput(text string) error {
	if outputFile == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().StringVarP(&domain, "domain", "d", "", "Glossary domain (default: all domains for the language)")

	translateCmd.Flags().StringVar(&serviceName, "service", "mymemory", "Translation service (google, mymemory, libretranslate)")
	translateCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials")
	translateCmd.Flags().StringVar(&mymemoryEmail, "mymemory-email", "", "MyMemory email (for higher limits)")
	translateCmd.Flags().StringVar(&libreURL, "libre-url", "", "LibreTranslate base URL")
	translateCmd.Flags().StringVar(&libreKey, "libre-key", "", "LibreTranslate API key")

	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable translation memory cache")
	translateCmd.Flags().BoolVar(&lineBatch, "lines", false, "Translate each input line independently")

	translateCmd.MarkFlagRequired("target")
}

// Package main provides the CLI entry point for xlshift.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/sheetops/xlshift/pkg/xlshift"
	"github.com/sheetops/xlshift/pkg/xlshift/models"
)

var (
	sheetName    string
	requestsPath string
	outputPath   string
	keyColsSpec  string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlshift [input.xlsx]",
		Short: "Insert rows into an xlsx sheet without breaking references",
		Long: `xlshift inserts groups of rows after anchor rows of a target sheet,
clones the anchor row's formatting and non-key formulas into each new row,
and rewrites formulas and hyperlinks on every other sheet so they keep
pointing at the same logical rows.

Insertion requests are read from a JSON file (or stdin with -):

  [{"anchor_row": 3, "rows": [[2, 6], [2, 5]]},
   {"anchor_row": 5, "rows": [[8, 3]]}]

Each inner array carries the values for the key columns, in order.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Target sheet name")
	rootCmd.Flags().StringVarP(&requestsPath, "requests", "r", "", "Insertion requests JSON file (- for stdin)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (never the input)")
	rootCmd.Flags().StringVar(&keyColsSpec, "key-cols", "I,J", "Comma-separated key columns (letters or 1-based numbers)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose progress logging")

	for _, flag := range []string{"sheet", "requests", "output"} {
		if err := rootCmd.MarkFlagRequired(flag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	keyCols, err := parseKeyCols(keyColsSpec)
	if err != nil {
		return err
	}

	requests, err := readRequests(requestsPath)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	result, err := xlshift.InsertRows(inputPath, sheetName, requests, outputPath, xlshift.Options{
		KeyColumns: keyCols,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	summary, err := json.MarshalIndent(struct {
		Inserted          int                       `json:"inserted"`
		UpdatedReferences int                       `json:"updated_references"`
		Positions         []models.InsertedPosition `json:"positions"`
	}{len(result.Inserted), result.UpdatedReferences, result.Inserted}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(summary))
	return nil
}

// parseKeyCols accepts column letters ("I,J") or 1-based numbers ("9,10").
func parseKeyCols(spec string) ([]int, error) {
	parts := strings.Split(spec, ",")
	cols := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			cols = append(cols, n)
			continue
		}
		n, err := excelize.ColumnNameToNumber(part)
		if err != nil {
			return nil, fmt.Errorf("invalid key column %q: %w", part, err)
		}
		cols = append(cols, n)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no key columns in %q", spec)
	}
	return cols, nil
}

func readRequests(path string) ([]models.InsertionRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading requests: %w", err)
	}

	var requests []models.InsertionRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("parsing requests: %w", err)
	}
	return requests, nil
}

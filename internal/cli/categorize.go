package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"kycintake/internal/kyc"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize [files...]",
	Short: "Group owner files by owner and document key",
	Long:  `Applies the owner{N}_{document_key}.{ext} naming convention (or a manifest) and prints the resulting grouping as JSON. Only file names are inspected.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCategorize,
}

var (
	categorizeStrict   bool
	categorizeManifest string
)

func init() {
	categorizeCmd.Flags().BoolVar(&categorizeStrict, "strict", false, "Reject unrecognized file names instead of dropping them (default from KYC_STRICT_FILENAMES)")
	categorizeCmd.Flags().StringVar(&categorizeManifest, "manifest", "", "Path to an owners_files_manifest JSON file")
	rootCmd.AddCommand(categorizeCmd)
}

type categorizeOutput struct {
	Owners  map[string]map[string][]string `json:"owners"`
	Dropped []kyc.DroppedFile              `json:"dropped"`
}

func runCategorize(cmd *cobra.Command, args []string) error {
	files := make([]kyc.RawFile, len(args))
	for i, p := range args {
		files[i] = kyc.RawFile{Filename: filepath.Base(p)}
	}

	strict := strictFlag(cmd, categorizeStrict)

	var categorizer kyc.Categorizer = kyc.FilenameCategorizer{Strict: strict}
	if categorizeManifest != "" {
		entries, err := readManifest(categorizeManifest)
		if err != nil {
			return err
		}
		categorizer = kyc.ManifestCategorizer{Entries: entries, Strict: strict}
	}

	cat, err := categorizer.Categorize(files)
	if err != nil {
		return err
	}

	out := categorizeOutput{
		Owners:  make(map[string]map[string][]string, len(cat.Owners)),
		Dropped: cat.Dropped,
	}
	if out.Dropped == nil {
		out.Dropped = []kyc.DroppedFile{}
	}
	for idx, docs := range cat.Owners {
		byKey := make(map[string][]string, len(docs))
		for key, cfs := range docs {
			for _, cf := range cfs {
				byKey[key] = append(byKey[key], cf.File.Filename)
			}
		}
		out.Owners[strconv.Itoa(idx)] = byKey
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readManifest(path string) ([]kyc.ManifestEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return kyc.ParseManifest(raw)
}

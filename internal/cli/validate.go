package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kycintake/internal/kyc"
	"kycintake/internal/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate [owner-files...]",
	Short: "Validate a business submission without uploading",
	Long: `Runs the intake validator over local files and prints OK, or the
error code and message the API would return.

Example:
  kycctl validate --type llc --owners owners.json \
    --business certificate_of_incorporation=coi.pdf \
    --business company_kra_pin=pin.pdf \
    --business company_cr12=cr12.pdf --cr12-date 2024-11-20 \
    --business company_crb_report=crb.pdf \
    owner0_national_id_passport.jpg owner0_mobile_money_statement.pdf`,
	RunE: runValidate,
}

var (
	validateType     string
	validateOwners   string
	validateBusiness []string
	validateCR12Date string
	validateStrict   bool
	validateManifest string
	validateMaxAge   int
	validateVerbose  bool
)

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateType, "type", "", "Business type: sole_proprietorship, llc or llp")
	f.StringVar(&validateOwners, "owners", "", "Path to the owners_json file")
	f.StringArrayVar(&validateBusiness, "business", nil, "Business document as key=path (repeatable)")
	f.StringVar(&validateCR12Date, "cr12-date", "", "CR12 issue date (YYYY-MM-DD)")
	f.BoolVar(&validateStrict, "strict", false, "Reject unrecognized owner file names (default from KYC_STRICT_FILENAMES)")
	f.StringVar(&validateManifest, "manifest", "", "Path to an owners_files_manifest JSON file")
	f.IntVar(&validateMaxAge, "max-age", 0, "Maximum CR12 age in days (default from KYC_CR12_MAX_AGE_DAYS)")
	f.BoolVarP(&validateVerbose, "verbose", "v", false, "Log dropped files to stderr")
	_ = validateCmd.MarkFlagRequired("type")
	_ = validateCmd.MarkFlagRequired("owners")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ownersJSON, err := os.ReadFile(validateOwners)
	if err != nil {
		return fmt.Errorf("read owners file: %w", err)
	}

	in := kyc.SubmissionInput{
		BusinessName:  "kycctl",
		BusinessType:  validateType,
		OwnersJSON:    ownersJSON,
		CR12IssuedOn:  validateCR12Date,
		BusinessFiles: make(map[model.BusinessDocumentKey]*kyc.RawFile),
	}

	for _, pair := range validateBusiness {
		key, path, ok := strings.Cut(pair, "=")
		if !ok || !isBusinessKey(key) {
			return fmt.Errorf("invalid --business %q: want key=path with a known document key", pair)
		}
		f, err := loadFile(path)
		if err != nil {
			return err
		}
		in.BusinessFiles[model.BusinessDocumentKey(key)] = &f
	}

	for _, path := range args {
		f, err := loadFile(path)
		if err != nil {
			return err
		}
		in.OwnerFiles = append(in.OwnerFiles, f)
	}

	if validateManifest != "" {
		if in.ManifestJSON, err = os.ReadFile(validateManifest); err != nil {
			return err
		}
	}

	maxAge := validateMaxAge
	if !cmd.Flags().Changed("max-age") {
		maxAge = cfg.KYC.CR12MaxAgeDays
	}

	logOut := io.Discard
	if validateVerbose {
		logOut = cmd.ErrOrStderr()
	}
	v := kyc.NewValidator(
		kyc.WithStrictFilenames(strictFlag(cmd, validateStrict)),
		kyc.WithMaxDocumentAge(maxAge),
		kyc.WithLocation(cfg.Location()),
		kyc.WithLogger(slog.New(slog.NewTextHandler(logOut, nil))),
	)

	sub, err := v.Validate(cmd.Context(), in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "OK: %s with %d owner(s), %d business document(s)\n",
		sub.BusinessType, len(sub.Owners), len(sub.BusinessFiles))
	for _, d := range sub.Dropped {
		fmt.Fprintf(out, "dropped: %s (%s)\n", d.Filename, d.Reason)
	}
	return nil
}

func isBusinessKey(key string) bool {
	for _, k := range model.BusinessDocumentKeys {
		if string(k) == key {
			return true
		}
	}
	return false
}

func loadFile(path string) (kyc.RawFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return kyc.RawFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return kyc.RawFile{Filename: filepath.Base(path), Content: content}, nil
}

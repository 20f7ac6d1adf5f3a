package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycintake/internal/kyc"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	categorizeStrict, categorizeManifest = false, ""
	validateType, validateOwners, validateCR12Date, validateManifest = "", "", "", ""
	validateBusiness, validateStrict, validateMaxAge, validateVerbose = nil, false, 0, false
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "categorize")
	assert.Contains(t, names, "validate")
}

func TestCategorizeCmd(t *testing.T) {
	out, err := runCLI(t, "categorize",
		"docs/owner0_national_id_passport.jpg",
		"owner0_mobile_money_statement.pdf",
		"owner1_national-id-passport.png",
		"random.pdf",
	)
	require.NoError(t, err)

	var got categorizeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"owner0_national_id_passport.jpg"}, got.Owners["0"]["national_id_passport"])
	assert.Equal(t, []string{"owner0_mobile_money_statement.pdf"}, got.Owners["0"]["mobile_money_statement"])
	assert.Equal(t, []string{"owner1_national-id-passport.png"}, got.Owners["1"]["national_id_passport"])
	require.Len(t, got.Dropped, 1)
	assert.Equal(t, "random.pdf", got.Dropped[0].Filename)
}

func TestCategorizeCmd_Strict(t *testing.T) {
	_, err := runCLI(t, "categorize", "--strict", "random.pdf")

	require.Error(t, err)
	assert.Equal(t, kyc.CodeUnrecognizedOwnerFile, kyc.CodeOf(err))
}

func TestCategorizeCmd_StrictFromEnv(t *testing.T) {
	t.Setenv("KYC_STRICT_FILENAMES", "true")

	_, err := runCLI(t, "categorize", "random.pdf")
	require.Error(t, err)
	assert.Equal(t, kyc.CodeUnrecognizedOwnerFile, kyc.CodeOf(err))

	out, err := runCLI(t, "categorize", "--strict=false", "random.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "random.pdf")
}

func TestCategorizeCmd_DuplicateManifestFilename(t *testing.T) {
	manifest := writeFile(t, t.TempDir(), "manifest.json",
		`[{"filename":"scan.pdf","owner_index":0,"document_key":"national_id_passport"},`+
			`{"filename":"scan.pdf","owner_index":1,"document_key":"national_id_passport"}]`)

	_, err := runCLI(t, "categorize", "--manifest", manifest, "scan.pdf", "scan.pdf")
	require.Error(t, err)
	assert.Equal(t, kyc.CodeUnrecognizedOwnerFile, kyc.CodeOf(err))
}

func TestCategorizeCmd_RequiresArgs(t *testing.T) {
	_, err := runCLI(t, "categorize")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	owners := writeFile(t, dir, "owners.json", `[{"full_name":"Jane Doe"}]`)
	coi := writeFile(t, dir, "coi.pdf", "coi")
	pin := writeFile(t, dir, "pin.pdf", "pin")
	cr12 := writeFile(t, dir, "cr12.pdf", "cr12")
	crb := writeFile(t, dir, "crb.pdf", "crb")
	id := writeFile(t, dir, "owner0_national_id_passport.jpg", "id")
	mm := writeFile(t, dir, "owner0_mobile_money_statement.pdf", "mm")
	extra := writeFile(t, dir, "owner3_selfie.jpg", "selfie")
	today := time.Now().Format(kyc.IssueDateLayout)

	base := []string{"validate", "--type", "llc", "--owners", owners,
		"--business", "certificate_of_incorporation=" + coi,
		"--business", "company_kra_pin=" + pin,
		"--business", "company_cr12=" + cr12,
		"--business", "company_crb_report=" + crb,
	}

	t.Run("ok", func(t *testing.T) {
		out, err := runCLI(t, append(base, "--cr12-date", today, id, mm, extra)...)

		require.NoError(t, err)
		assert.Contains(t, out, "OK: llc with 1 owner(s), 4 business document(s)")
		assert.Contains(t, out, "dropped: owner3_selfie.jpg")
	})

	t.Run("stale cr12", func(t *testing.T) {
		old := time.Now().AddDate(0, 0, -200).Format(kyc.IssueDateLayout)
		_, err := runCLI(t, append(base, "--cr12-date", old, id, mm)...)

		assert.Equal(t, kyc.CodeStaleDocument, kyc.CodeOf(err))
	})

	t.Run("max age from env", func(t *testing.T) {
		t.Setenv("KYC_CR12_MAX_AGE_DAYS", "365")
		old := time.Now().AddDate(0, 0, -200).Format(kyc.IssueDateLayout)

		_, err := runCLI(t, append(base, "--cr12-date", old, id, mm)...)
		require.NoError(t, err)

		_, err = runCLI(t, append(base, "--max-age", "90", "--cr12-date", old, id, mm)...)
		assert.Equal(t, kyc.CodeStaleDocument, kyc.CodeOf(err))
	})

	t.Run("missing owner document", func(t *testing.T) {
		_, err := runCLI(t, append(base, id)...)

		assert.Equal(t, kyc.CodeMissingOwnerDocument, kyc.CodeOf(err))
	})

	t.Run("unknown business key", func(t *testing.T) {
		_, err := runCLI(t, "validate", "--type", "llc", "--owners", owners, "--business", "tax_return="+coi)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --business")
	})

	t.Run("type is required", func(t *testing.T) {
		_, err := runCLI(t, "validate", "--owners", owners)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `required flag(s) "type" not set`)
	})
}

package kyc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(name string) RawFile {
	return RawFile{Filename: name, Content: []byte(name), ContentType: "application/pdf"}
}

func TestParseOwnerFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantIdx int
		wantKey string
		wantOK  bool
	}{
		{"multi segment key", "owner2_national_id_passport.pdf", 2, "national_id_passport", true},
		{"page suffix kept", "owner2_bank_statement_page2.pdf", 2, "bank_statement_page2", true},
		{"single segment key", "owner0_selfie.jpg", 0, "selfie", true},
		{"no extension", "owner1_mobile_money_statement", 1, "mobile_money_statement", true},
		{"upper case normalized", "OWNER3_National-ID_Passport.PDF", 3, "national_id_passport", true},
		{"leading zeros", "owner007_selfie.png", 7, "selfie", true},
		{"no owner prefix", "random.pdf", 0, "", false},
		{"missing index", "owner_selfie.pdf", 0, "", false},
		{"signed index", "owner-1_selfie.pdf", 0, "", false},
		{"non numeric index", "ownerA_selfie.pdf", 0, "", false},
		{"empty key", "owner1_.pdf", 0, "", false},
		{"other prefix", "partner1_selfie.pdf", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, key, ok := ParseOwnerFilename(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIdx, idx)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestFilenameCategorizer_Lenient(t *testing.T) {
	files := []RawFile{
		raw("owner0_payslip.pdf"),
		raw("random.pdf"),
		raw("owner1_national_id_passport.pdf"),
		raw("owner0_payslip.png"),
		raw("owner0_national_id_passport.pdf"),
	}

	cat, err := FilenameCategorizer{}.Categorize(files)
	require.NoError(t, err)

	require.Len(t, cat.Owners, 2)
	payslips := cat.Documents(0)["payslip"]
	require.Len(t, payslips, 2)
	assert.Equal(t, "owner0_payslip.pdf", payslips[0].File.Filename)
	assert.Equal(t, 0, payslips[0].Sequence)
	assert.Equal(t, "owner0_payslip.png", payslips[1].File.Filename)
	assert.Equal(t, 1, payslips[1].Sequence)

	assert.True(t, cat.Has(0, "national_id_passport"))
	assert.True(t, cat.Has(1, "national_id_passport"))
	assert.False(t, cat.Has(1, "payslip"))
	assert.False(t, cat.Has(5, "payslip"))

	assert.Equal(t, []DroppedFile{{Filename: "random.pdf", Reason: "unrecognized filename"}}, cat.Dropped)
}

func TestFilenameCategorizer_ArrivalOrder(t *testing.T) {
	cat, err := FilenameCategorizer{}.Categorize([]RawFile{
		raw("owner0_payslip_jan.pdf"),
		raw("owner0_payslip_feb.pdf"),
	})
	require.NoError(t, err)

	docs := cat.Documents(0)
	require.Len(t, docs, 2)
	assert.Equal(t, "owner0_payslip_jan.pdf", docs["payslip_jan"][0].File.Filename)
	assert.Equal(t, "owner0_payslip_feb.pdf", docs["payslip_feb"][0].File.Filename)
}

func TestFilenameCategorizer_Strict(t *testing.T) {
	_, err := FilenameCategorizer{Strict: true}.Categorize([]RawFile{
		raw("owner0_selfie.jpg"),
		raw("scan_0001.pdf"),
	})
	require.Error(t, err)
	assert.Equal(t, CodeUnrecognizedOwnerFile, CodeOf(err))
	assert.Contains(t, err.Error(), "scan_0001.pdf")
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
		wantMsg string
	}{
		{"valid", `[{"filename":"a.pdf","owner_index":0,"document_key":"national_id_passport"}]`, 1, false, ""},
		{"empty array", `[]`, 0, false, ""},
		{"not an array", `{"filename":"a.pdf"}`, 0, true, ""},
		{"missing filename", `[{"owner_index":0,"document_key":"selfie"}]`, 0, true, ""},
		{"negative index", `[{"filename":"a.pdf","owner_index":-1,"document_key":"selfie"}]`, 0, true, ""},
		{"blank key", `[{"filename":"a.pdf","owner_index":0,"document_key":"  "}]`, 0, true, ""},
		{
			"duplicate filename",
			`[{"filename":"scan.pdf","owner_index":0,"document_key":"national_id_passport"},` +
				`{"filename":"scan.pdf","owner_index":1,"document_key":"national_id_passport"}]`,
			0, true, `"scan.pdf"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseManifest([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, CodeUnrecognizedOwnerFile, CodeOf(err))
				if tt.wantMsg != "" {
					assert.Contains(t, err.Error(), tt.wantMsg)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)
		})
	}
}

func TestManifestCategorizer(t *testing.T) {
	entries := []ManifestEntry{
		{Filename: "id-front.jpg", OwnerIndex: 1, DocumentKey: "National-ID_Passport"},
		{Filename: "statement.pdf", OwnerIndex: 0, DocumentKey: "mobile_money_statement"},
	}
	files := []RawFile{raw("statement.pdf"), raw("id-front.jpg"), raw("notes.txt")}

	t.Run("lenient", func(t *testing.T) {
		cat, err := ManifestCategorizer{Entries: entries}.Categorize(files)
		require.NoError(t, err)
		assert.True(t, cat.Has(0, "mobile_money_statement"))
		assert.True(t, cat.Has(1, "national_id_passport"))
		assert.Equal(t, []DroppedFile{{Filename: "notes.txt", Reason: "not listed in manifest"}}, cat.Dropped)
	})

	t.Run("strict", func(t *testing.T) {
		_, err := ManifestCategorizer{Entries: entries, Strict: true}.Categorize(files)
		require.Error(t, err)
		assert.Equal(t, CodeUnrecognizedOwnerFile, CodeOf(err))
	})

	t.Run("duplicate filename", func(t *testing.T) {
		dup := []ManifestEntry{
			{Filename: "scan.pdf", OwnerIndex: 0, DocumentKey: "national_id_passport"},
			{Filename: "scan.pdf", OwnerIndex: 1, DocumentKey: "national_id_passport"},
		}
		cat, err := ManifestCategorizer{Entries: dup}.Categorize([]RawFile{raw("scan.pdf"), raw("scan.pdf")})
		require.Error(t, err)
		assert.Nil(t, cat)
		assert.Equal(t, CodeUnrecognizedOwnerFile, CodeOf(err))
		assert.Contains(t, err.Error(), `"scan.pdf"`)
	})
}

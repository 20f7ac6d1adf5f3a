package kyc

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawFile is an uploaded file as received from the submitter.
type RawFile struct {
	Filename    string
	Content     []byte
	ContentType string
}

// CategorizedFile is a RawFile attributed to an owner slot and document key.
// Sequence is its position among the files sharing the same slot and key.
type CategorizedFile struct {
	OwnerIndex  int
	DocumentKey string
	Sequence    int
	File        RawFile
}

// DroppedFile is an owner file that could not be attributed to any slot.
type DroppedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Categorization groups owner files by owner index, then by document key.
// Files under one key keep their arrival order.
type Categorization struct {
	Owners  map[int]map[string][]CategorizedFile
	Dropped []DroppedFile
}

func newCategorization() *Categorization {
	return &Categorization{Owners: make(map[int]map[string][]CategorizedFile)}
}

func (c *Categorization) add(owner int, key string, f RawFile) {
	docs, ok := c.Owners[owner]
	if !ok {
		docs = make(map[string][]CategorizedFile)
		c.Owners[owner] = docs
	}
	docs[key] = append(docs[key], CategorizedFile{
		OwnerIndex:  owner,
		DocumentKey: key,
		Sequence:    len(docs[key]),
		File:        f,
	})
}

// Documents returns the files of one owner keyed by document key.
func (c *Categorization) Documents(owner int) map[string][]CategorizedFile {
	return c.Owners[owner]
}

// Has reports whether owner has at least one file under key.
func (c *Categorization) Has(owner int, key string) bool {
	return len(c.Owners[owner][key]) > 0
}

// Categorizer attributes a flat batch of owner files to owner slots.
type Categorizer interface {
	Categorize(files []RawFile) (*Categorization, error)
}

// FilenameCategorizer reads the owner slot and document key from filenames
// of the form owner<N>_<documentKey>[_<sequenceTag>].<ext>. In lenient mode
// unparsable names are reported in Categorization.Dropped; in strict mode
// the first one fails the batch.
type FilenameCategorizer struct {
	Strict bool
}

func (fc FilenameCategorizer) Categorize(files []RawFile) (*Categorization, error) {
	out := newCategorization()
	for _, f := range files {
		idx, key, ok := ParseOwnerFilename(f.Filename)
		if !ok {
			if fc.Strict {
				return nil, newError(CodeUnrecognizedOwnerFile,
					"file %q does not follow owner<N>_<document>.<ext>", f.Filename)
			}
			out.Dropped = append(out.Dropped, DroppedFile{Filename: f.Filename, Reason: "unrecognized filename"})
			continue
		}
		out.add(idx, key, f)
	}
	return out, nil
}

// ParseOwnerFilename extracts the owner index and document key from name.
// owner2_bank_statement_page2.pdf yields (2, "bank_statement_page2").
func ParseOwnerFilename(name string) (int, string, bool) {
	parts := strings.SplitN(name, "_", 3)
	if len(parts) < 2 {
		return 0, "", false
	}
	prefix := parts[0]
	if len(prefix) < len("owner") || !strings.EqualFold(prefix[:len("owner")], "owner") {
		return 0, "", false
	}
	digits := prefix[len("owner"):]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, "", false
	}
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return 0, "", false
	}

	key := parts[1]
	if len(parts) == 3 {
		tail := parts[2]
		if dot := strings.LastIndex(tail, "."); dot >= 0 {
			tail = tail[:dot]
		}
		key += "_" + tail
	}
	if dot := strings.Index(key, "."); dot >= 0 {
		key = key[:dot]
	}
	key = NormalizeDocumentKey(key)
	if key == "" {
		return 0, "", false
	}
	return idx, key, true
}

// NormalizeDocumentKey lower-cases key and turns hyphens into underscores.
func NormalizeDocumentKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

// ManifestEntry explicitly ties an uploaded filename to an owner slot.
type ManifestEntry struct {
	Filename    string `json:"filename"`
	OwnerIndex  int    `json:"owner_index"`
	DocumentKey string `json:"document_key"`
}

// ParseManifest decodes a JSON array of manifest entries.
func ParseManifest(raw []byte) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &Error{Code: CodeUnrecognizedOwnerFile, Message: "owners_files_manifest must be a JSON array", Err: err}
	}
	for i, e := range entries {
		if e.Filename == "" || e.OwnerIndex < 0 || NormalizeDocumentKey(e.DocumentKey) == "" {
			return nil, newError(CodeUnrecognizedOwnerFile,
				"owners_files_manifest entry %d needs filename, owner_index >= 0 and document_key", i)
		}
	}
	if _, err := manifestIndex(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// manifestIndex maps filenames to entries. A filename listed twice cannot
// be attributed to a single owner and is rejected.
func manifestIndex(entries []ManifestEntry) (map[string]ManifestEntry, error) {
	byName := make(map[string]ManifestEntry, len(entries))
	for _, e := range entries {
		if _, dup := byName[e.Filename]; dup {
			return nil, newError(CodeUnrecognizedOwnerFile,
				"owners_files_manifest lists %q more than once; uploaded file names must be unique", e.Filename)
		}
		byName[e.Filename] = e
	}
	return byName, nil
}

// ManifestCategorizer attributes files using caller-supplied entries
// instead of filename conventions. Files without an entry are dropped, or
// rejected when Strict is set.
type ManifestCategorizer struct {
	Entries []ManifestEntry
	Strict  bool
}

func (mc ManifestCategorizer) Categorize(files []RawFile) (*Categorization, error) {
	byName, err := manifestIndex(mc.Entries)
	if err != nil {
		return nil, err
	}
	out := newCategorization()
	for _, f := range files {
		e, ok := byName[f.Filename]
		if !ok {
			if mc.Strict {
				return nil, newError(CodeUnrecognizedOwnerFile, "file %q is not listed in owners_files_manifest", f.Filename)
			}
			out.Dropped = append(out.Dropped, DroppedFile{Filename: f.Filename, Reason: "not listed in manifest"})
			continue
		}
		out.add(e.OwnerIndex, NormalizeDocumentKey(e.DocumentKey), f)
	}
	return out, nil
}

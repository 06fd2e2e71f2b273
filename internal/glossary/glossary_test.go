package glossary_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/termweave/termweave/internal/glossary"
)

func TestIndex_EntriesFor_LongestFirst(t *testing.T) {
	idx := glossary.NewIndex()
	idx.Add(glossary.Entry{ID: "1", Term: "acid", Translation: "acid-twi", Language: "twi", Domain: "agric"})
	idx.Add(glossary.Entry{ID: "2", Term: "acaricide", Translation: "nkramamoadi kum aduro", Language: "twi", Domain: "agric"})
	idx.Add(glossary.Entry{ID: "3", Term: "abattoir", Translation: "aboa kum fie", Language: "twi", Domain: "agric"})

	entries := idx.EntriesFor("twi", "agric")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Term != "acaricide" {
		t.Errorf("expected longest term first, got %q", entries[0].Term)
	}
	if entries[2].Term != "acid" {
		t.Errorf("expected shortest term last, got %q", entries[2].Term)
	}
}

func TestIndex_EntriesFor_StableTieBreak(t *testing.T) {
	idx := glossary.NewIndex()
	// Same length; load order must decide.
	idx.Add(glossary.Entry{ID: "1", Term: "atom", Translation: "first", Language: "twi", Domain: "science"})
	idx.Add(glossary.Entry{ID: "2", Term: "iron", Translation: "second", Language: "twi", Domain: "science"})

	entries := idx.EntriesFor("twi", "science")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "1" || entries[1].ID != "2" {
		t.Errorf("expected load order preserved for equal lengths, got %v then %v", entries[0].ID, entries[1].ID)
	}
}

func TestIndex_EntriesFor_AllDomains(t *testing.T) {
	idx := glossary.NewIndex()
	idx.Add(glossary.Entry{ID: "1", Term: "abattoir", Translation: "aboa kum fie", Language: "twi", Domain: "agric"})
	idx.Add(glossary.Entry{ID: "10", Term: "molecule", Translation: "molecule-twi", Language: "twi", Domain: "science"})
	idx.Add(glossary.Entry{ID: "11", Term: "atom", Translation: "atom-twi", Language: "twi", Domain: "science"})

	entries := idx.EntriesFor("twi", "")
	if len(entries) != 3 {
		t.Fatalf("expected union of 3 entries, got %d", len(entries))
	}
	// Longest-first ordering re-applied across domains.
	if entries[0].Term != "abattoir" && entries[0].Term != "molecule" {
		t.Errorf("expected an 8-rune term first, got %q", entries[0].Term)
	}
	for i := 1; i < len(entries); i++ {
		if len([]rune(entries[i-1].Term)) < len([]rune(entries[i].Term)) {
			t.Errorf("entries not longest-first at %d: %q before %q", i, entries[i-1].Term, entries[i].Term)
		}
	}
}

func TestIndex_EntriesFor_UnknownScope(t *testing.T) {
	idx := glossary.NewIndex()
	idx.Add(glossary.Entry{ID: "1", Term: "abattoir", Translation: "aboa kum fie", Language: "twi", Domain: "agric"})

	if got := idx.EntriesFor("twi", "nonexistent"); len(got) != 0 {
		t.Errorf("unknown domain should yield no entries, got %d", len(got))
	}
	if got := idx.EntriesFor("fr", ""); len(got) != 0 {
		t.Errorf("unknown language should yield no entries, got %d", len(got))
	}
}

func TestIndex_EntriesFor_CaseInsensitiveKeys(t *testing.T) {
	idx := glossary.NewIndex()
	idx.Add(glossary.Entry{ID: "1", Term: "abattoir", Translation: "aboa kum fie", Language: "TWI", Domain: "Agric"})

	if got := idx.EntriesFor("twi", "agric"); len(got) != 1 {
		t.Errorf("expected lookup to ignore key casing, got %d entries", len(got))
	}
}

func TestIndex_Queries(t *testing.T) {
	idx := glossary.NewIndex()
	idx.Add(glossary.Entry{ID: "1", Term: "abattoir", Translation: "aboa kum fie", Language: "twi", Domain: "agric"})
	idx.Add(glossary.Entry{ID: "10", Term: "molecule", Translation: "molecule-twi", Language: "twi", Domain: "science"})
	idx.Add(glossary.Entry{ID: "20", Term: "tracteur", Translation: "tractor", Language: "fr", Domain: "agric"})

	langs := idx.Languages()
	if len(langs) != 2 || langs[0] != "twi" || langs[1] != "fr" {
		t.Errorf("expected [twi fr], got %v", langs)
	}

	twiDomains := idx.Domains("twi")
	if len(twiDomains) != 2 || twiDomains[0] != "agric" || twiDomains[1] != "science" {
		t.Errorf("expected [agric science], got %v", twiDomains)
	}

	allDomains := idx.Domains("")
	if len(allDomains) != 2 {
		t.Errorf("expected 2 distinct domains across languages, got %v", allDomains)
	}

	if idx.Len() != 3 {
		t.Errorf("expected Len 3, got %d", idx.Len())
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "agric_terms_twi.csv",
		"id,term,translation\n"+
			"1,abattoir,aboa kum fie\n"+
			"2,acaricide,nkramamoadi kum aduro\n"+
			"3,acreage,asase dodoɔ\n")
	writeFile(t, dir, "science_terms_twi.csv",
		"id,term,translation\n"+
			"10,molecule,molecule_twi\n"+
			"11,atom,atom_twi\n")
	writeFile(t, dir, "notes.txt", "not a glossary\n")

	idx, err := glossary.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	langs := idx.Languages()
	if len(langs) != 1 || langs[0] != "twi" {
		t.Fatalf("expected [twi], got %v", langs)
	}

	if got := idx.EntriesFor("twi", "agric"); len(got) != 3 {
		t.Errorf("expected 3 agric entries, got %d", len(got))
	}
	if got := idx.EntriesFor("twi", ""); len(got) != 5 {
		t.Errorf("expected 5 combined entries, got %d", len(got))
	}
}

func TestLoadDir_MalformedRowsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "agric_terms_twi.csv",
		"id,term,translation\n"+
			"1,abattoir,aboa kum fie\n"+
			"2,,missing term\n"+
			"3,acreage,\n"+
			"4\n"+
			"5,acaricide,nkramamoadi kum aduro\n")

	idx, err := glossary.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	entries := idx.EntriesFor("twi", "agric")
	if len(entries) != 2 {
		t.Fatalf("expected 2 valid entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Term == "" || e.Translation == "" {
			t.Errorf("malformed entry survived the load: %+v", e)
		}
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	if _, err := glossary.LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

package wordlist

import (
	"reflect"
	"testing"

	"github.com/user/fightwords/pkg/mocks"
)

func TestParse(t *testing.T) {
	data := []byte("POW!\n\n  BAM!  \n\nKAPOW!\n")

	words := Parse(data)

	expected := []string{"POW!", "BAM!", "KAPOW!"}
	if !reflect.DeepEqual(words, expected) {
		t.Errorf("expected %v, got %v", expected, words)
	}
}

func TestParse_Empty(t *testing.T) {
	if words := Parse(nil); len(words) != 0 {
		t.Errorf("expected no words, got %v", words)
	}
	if words := Parse([]byte("\n\n  \n")); len(words) != 0 {
		t.Errorf("expected no words from blank lines, got %v", words)
	}
}

func TestLoad(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["words.txt"] = []byte("ZAP!\nTHWACK!\n")

	words, err := Load(fs, "words.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("expected 2 words, got %d", len(words))
	}
}

func TestLoad_Missing(t *testing.T) {
	fs := mocks.NewFileSystem()

	if _, err := Load(fs, "nope.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSafeName(t *testing.T) {
	cases := []struct {
		word string
		want string
	}{
		{"POW!", "POW"},
		{"KA-BLAM!", "KA_BLAM"},
		{"HOLY COW", "HOLY_COW"},
		{"ZAP", "ZAP"},
	}

	for _, c := range cases {
		if got := SafeName(c.word); got != c.want {
			t.Errorf("SafeName(%q) = %q, want %q", c.word, got, c.want)
		}
	}
}

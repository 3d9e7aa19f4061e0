package store

import "testing"

func TestTableNames(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"ImportMetadata", ImportMetadata{}.TableName(), "ImportMetadata"},
		{"ImdbFile", ImdbFile{}.TableName(), "ImdbFiles"},
		{"ImdbFileStaging", ImdbFileStaging{}.TableName(), "ImdbFilesStaging"},
		{"ParsedPage", ParsedPage{}.TableName(), "ParsedPages"},
		{"ParseCacheEntry", ParseCacheEntry{}.TableName(), "ParseCache"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s.TableName() = %q, want %q", c.name, c.got, c.want)
		}
	}
}

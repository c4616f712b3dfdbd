package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSoftwareDB = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE softwaredb SYSTEM "softwaredb1.dtd">
<softwaredb timestamp="1403206953">
  <software>
    <title>Nemesis</title>
    <genmsxid>1065</genmsxid>
    <system>MSX</system>
    <company>Konami</company>
    <year>1986</year>
    <country>JP</country>
    <dump>
      <original value="true">GoodMSX</original>
      <megarom>
        <type>KonamiSCC</type>
        <start>0000</start>
        <hash algo="sha1">aaaa1111</hash>
      </megarom>
    </dump>
    <dump>
      <original value="false"></original>
      <megarom>
        <type>KonamiSCC</type>
        <hash algo="sha1">bbbb2222</hash>
      </megarom>
    </dump>
  </software>
  <software>
    <title>Eggerland Mystery</title>
    <system>MSX</system>
    <company>HAL Laboratory</company>
    <year>1985</year>
    <country>JP</country>
    <dump>
      <original value="true">GoodMSX</original>
      <rom>
        <start>4000</start>
        <text>dumped from cartridge</text>
        <hash algo="sha1">cccc3333</hash>
      </rom>
    </dump>
  </software>
</softwaredb>`

const sampleTapeDB = `<?xml version="1.0" encoding="UTF-8"?>
<softwaredb timestamp="1403206953">
  <software>
    <title>Manic Miner</title>
    <system>MSX</system>
    <company>Software Projects</company>
    <year>1984</year>
    <country>GB</country>
    <dump>
      <original value="false"></original>
      <cas>
        <hash algo="sha1">dddd4444</hash>
      </cas>
    </dump>
  </software>
</softwaredb>`

func TestParseRepositoryInfo(t *testing.T) {
	entries, err := parseRepositoryInfo(strings.NewReader(sampleSoftwareDB))
	if err != nil {
		t.Fatalf("expected parse to succeed, got error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	nemesis, ok := entries["aaaa1111"]
	if !ok {
		t.Fatalf("expected entry for aaaa1111")
	}
	if nemesis.Title != "Nemesis" || nemesis.Company != "Konami" || nemesis.Year != "1986" || nemesis.Country != "JP" {
		t.Fatalf("unexpected descriptive fields: %+v", nemesis)
	}
	if !nemesis.Original || nemesis.OriginalText != "GoodMSX" || nemesis.MapperType != "KonamiSCC" || nemesis.Start != "0000" {
		t.Fatalf("unexpected dump fields: %+v", nemesis)
	}

	redump := entries["bbbb2222"]
	if redump.Original || redump.Title != "Nemesis" {
		t.Fatalf("unexpected redump fields: %+v", redump)
	}

	eggerland := entries["cccc3333"]
	if eggerland.Remark != "dumped from cartridge" || eggerland.Start != "4000" {
		t.Fatalf("unexpected eggerland fields: %+v", eggerland)
	}
	if eggerland.Mapper() != "Mirrored ROM" {
		t.Fatalf("expected default mapper, got %q", eggerland.Mapper())
	}
}

func TestParseDumpCodes(t *testing.T) {
	codes, err := parseDumpCodes(strings.NewReader(sampleSoftwareDB), "bbbb2222")
	if err != nil {
		t.Fatalf("expected parse to succeed, got error: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected both nemesis dumps, got %v", codes)
	}
	for _, h := range []string{"aaaa1111", "bbbb2222"} {
		if _, ok := codes[h]; !ok {
			t.Fatalf("expected hash %s in %v", h, codes)
		}
	}

	codes, err = parseDumpCodes(strings.NewReader(sampleSoftwareDB), "deadbeef")
	if err != nil {
		t.Fatalf("expected parse to succeed, got error: %v", err)
	}
	if len(codes) != 0 {
		t.Fatalf("expected no codes for unknown hash, got %v", codes)
	}
}

func TestParseGameInfo(t *testing.T) {
	game, err := parseGameInfo(strings.NewReader(sampleSoftwareDB), "cccc3333")
	if err != nil {
		t.Fatalf("expected parse to succeed, got error: %v", err)
	}
	if game == nil || game.Title != "Eggerland Mystery" {
		t.Fatalf("unexpected game: %+v", game)
	}

	game, err = parseGameInfo(strings.NewReader(sampleSoftwareDB), "deadbeef")
	if err != nil {
		t.Fatalf("expected parse to succeed, got error: %v", err)
	}
	if game != nil {
		t.Fatalf("expected nil for unknown hash, got %+v", game)
	}
}

func TestDataMergesSources(t *testing.T) {
	dir := t.TempDir()
	romPath := filepath.Join(dir, "softwaredb.xml")
	tapePath := filepath.Join(dir, "softwaredb-tapes.xml")
	if err := os.WriteFile(romPath, []byte(sampleSoftwareDB), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tapePath, []byte(sampleTapeDB), 0o644); err != nil {
		t.Fatal(err)
	}

	data := NewData(
		Source{Name: "rom", Path: romPath},
		Source{Name: "tape", Path: tapePath},
	)
	info, err := data.RepositoryInfo()
	if err != nil {
		t.Fatalf("expected merge to succeed, got error: %v", err)
	}
	if len(info) != 4 {
		t.Fatalf("expected 4 merged entries, got %d", len(info))
	}
	if info["dddd4444"].Title != "Manic Miner" {
		t.Fatalf("expected tape entry in merged map, got %+v", info["dddd4444"])
	}

	codes, err := data.DumpCodes("dddd4444")
	if err != nil {
		t.Fatalf("expected lookup to succeed, got error: %v", err)
	}
	if _, ok := codes["dddd4444"]; !ok || len(codes) != 1 {
		t.Fatalf("expected single tape code, got %v", codes)
	}
}

func TestDataRejectsMissingSource(t *testing.T) {
	dir := t.TempDir()
	tapePath := filepath.Join(dir, "softwaredb-tapes.xml")
	if err := os.WriteFile(tapePath, []byte(sampleTapeDB), 0o644); err != nil {
		t.Fatal(err)
	}

	// The rom database is configured but the file is gone: every lookup
	// must fail rather than quietly fall back to the remaining sources.
	data := NewData(
		Source{Name: "rom", Path: filepath.Join(dir, "softwaredb.xml")},
		Source{Name: "tape", Path: tapePath},
	)
	if _, err := data.RepositoryInfo(); err == nil {
		t.Fatalf("expected error for vanished rom database")
	}
	if _, err := data.DumpCodes("dddd4444"); err == nil {
		t.Fatalf("expected error for vanished rom database")
	}
	if _, err := data.GameInfo("dddd4444"); err == nil {
		t.Fatalf("expected error for vanished rom database")
	}
}

func TestDataWithoutSources(t *testing.T) {
	data := NewData()
	info, err := data.RepositoryInfo()
	if err != nil {
		t.Fatalf("expected empty result, got error: %v", err)
	}
	if len(info) != 0 {
		t.Fatalf("expected no entries, got %d", len(info))
	}
}

func TestDataRejectsBrokenSource(t *testing.T) {
	dir := t.TempDir()
	romPath := filepath.Join(dir, "softwaredb.xml")
	if err := os.WriteFile(romPath, []byte("<softwaredb><software"), 0o644); err != nil {
		t.Fatal(err)
	}

	data := NewData(Source{Name: "rom", Path: romPath})
	if _, err := data.RepositoryInfo(); err == nil {
		t.Fatalf("expected error for truncated database")
	}
}

package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"msxcat/internal/model"
)

// softwareEntry is one <software> element with its flattened dumps.
type softwareEntry struct {
	Title   string
	System  string
	Company string
	Year    string
	Country string
	Dumps   []dumpEntry
}

// dumpEntry is one <dump> element. The hash values are hex SHA-1 codes.
type dumpEntry struct {
	Original     bool
	OriginalText string
	Mapper       string
	Start        string
	Remark       string
	Hashes       []string
}

func (s *softwareEntry) game(d dumpEntry) model.RepositoryGame {
	return model.RepositoryGame{
		Title:        s.Title,
		System:       s.System,
		Company:      s.Company,
		Year:         s.Year,
		Country:      s.Country,
		Original:     d.Original,
		OriginalText: d.OriginalText,
		MapperType:   d.Mapper,
		Start:        d.Start,
		Remark:       d.Remark,
	}
}

// eachSoftware streams software entries to fn. Returning false from fn stops
// the walk early, so hash lookups avoid reading the whole database.
func eachSoftware(r io.Reader, fn func(softwareEntry) bool) error {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false // DTD is referenced; relax strict parsing.

	var (
		software *softwareEntry
		dump     *dumpEntry
		text     strings.Builder
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			text.Reset()
			switch t.Name.Local {
			case "software":
				software = &softwareEntry{}
			case "dump":
				if software != nil {
					software.Dumps = append(software.Dumps, dumpEntry{})
					dump = &software.Dumps[len(software.Dumps)-1]
				}
			case "original":
				if dump != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "value" {
							dump.Original = attr.Value == "true"
						}
					}
				}
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			value := strings.TrimSpace(text.String())
			text.Reset()
			switch t.Name.Local {
			case "software":
				if software != nil && !fn(*software) {
					return nil
				}
				software = nil
			case "dump":
				dump = nil
			case "title":
				if software != nil {
					software.Title = value
				}
			case "system":
				if software != nil {
					software.System = value
				}
			case "company":
				if software != nil {
					software.Company = value
				}
			case "year":
				if software != nil {
					software.Year = value
				}
			case "country":
				if software != nil {
					software.Country = value
				}
			case "original":
				if dump != nil {
					dump.OriginalText = value
				}
			case "type", "boot":
				if dump != nil {
					dump.Mapper = value
				}
			case "start":
				if dump != nil {
					dump.Start = value
				}
			case "text":
				if dump != nil {
					dump.Remark = value
				}
			case "hash":
				if dump != nil && value != "" {
					dump.Hashes = append(dump.Hashes, value)
				}
			}
		}
	}
}

func parseRepositoryInfo(r io.Reader) (map[string]model.RepositoryGame, error) {
	entries := make(map[string]model.RepositoryGame)
	err := eachSoftware(r, func(s softwareEntry) bool {
		for _, d := range s.Dumps {
			game := s.game(d)
			for _, h := range d.Hashes {
				if _, ok := entries[h]; !ok {
					entries[h] = game
				}
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func parseDumpCodes(r io.Reader, sha1Code string) (map[string]struct{}, error) {
	codes := make(map[string]struct{})
	err := eachSoftware(r, func(s softwareEntry) bool {
		found := false
		for _, d := range s.Dumps {
			for _, h := range d.Hashes {
				if h == sha1Code {
					found = true
				}
			}
		}
		if !found {
			return true
		}
		for _, d := range s.Dumps {
			for _, h := range d.Hashes {
				codes[h] = struct{}{}
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func parseGameInfo(r io.Reader, sha1Code string) (*model.RepositoryGame, error) {
	var game *model.RepositoryGame
	err := eachSoftware(r, func(s softwareEntry) bool {
		for _, d := range s.Dumps {
			for _, h := range d.Hashes {
				if h == sha1Code {
					g := s.game(d)
					game = &g
					return false
				}
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

package model

// MirroredROM is the mapper reported for ROMs the software database carries
// no explicit mapper type for.
const MirroredROM = "Mirrored ROM"

// RepositoryGame is one software database record keyed by content hash.
// Identity is the descriptive tuple (title, system, company, year, country);
// several hashes (re-dumps) legitimately map to the same logical record.
type RepositoryGame struct {
	Title   string
	System  string
	Company string
	Year    string
	Country string

	Original     bool
	OriginalText string
	MapperType   string
	Start        string
	Remark       string
}

// Mapper returns the mapper type, defaulting to MirroredROM when the source
// record carried none.
func (r RepositoryGame) Mapper() string {
	if r.MapperType == "" {
		return MirroredROM
	}
	return r.MapperType
}

// SameSoftware reports whether two records describe the same logical title,
// ignoring per-dump attributes.
func (r RepositoryGame) SameSoftware(other RepositoryGame) bool {
	return r.Title == other.Title &&
		r.System == other.System &&
		r.Company == other.Company &&
		r.Year == other.Year &&
		r.Country == other.Country
}

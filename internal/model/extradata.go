package model

// Generation bit positions in the extra-data generations mask.
const (
	generationMSX = 1 << iota
	generationMSX2
	generationMSX2Plus
	generationTurboR
)

// Sound chip bit positions in the extra-data sound chips mask.
const (
	soundPSG = 1 << iota
	soundSCC
	soundSCCI
	soundPCM
	soundMSXMUSIC
	soundMSXAUDIO
	soundMoonsound
	soundMIDI
)

// ExtraData is the locally shipped metadata supplement for one content hash.
// The bit-packed masks from the overlay file exist only inside
// NewExtraData; everywhere else the capabilities are plain booleans.
type ExtraData struct {
	MSXGenID int

	IsMSX      bool
	IsMSX2     bool
	IsMSX2Plus bool
	IsTurboR   bool

	IsPSG       bool
	IsSCC       bool
	IsSCCI      bool
	IsPCM       bool
	IsMSXMUSIC  bool
	IsMSXAUDIO  bool
	IsMoonsound bool
	IsMIDI      bool

	Genre1 Genre
	Genre2 Genre

	ScreenshotSuffix string
}

// NewExtraData unpacks the overlay's generation and sound chip masks into an
// ExtraData value.
func NewExtraData(msxGenID, generations, soundChips, genre1, genre2 int, suffix string) ExtraData {
	return ExtraData{
		MSXGenID: msxGenID,

		IsMSX:      generations&generationMSX != 0,
		IsMSX2:     generations&generationMSX2 != 0,
		IsMSX2Plus: generations&generationMSX2Plus != 0,
		IsTurboR:   generations&generationTurboR != 0,

		IsPSG:       soundChips&soundPSG != 0,
		IsSCC:       soundChips&soundSCC != 0,
		IsSCCI:      soundChips&soundSCCI != 0,
		IsPCM:       soundChips&soundPCM != 0,
		IsMSXMUSIC:  soundChips&soundMSXMUSIC != 0,
		IsMSXAUDIO:  soundChips&soundMSXAUDIO != 0,
		IsMoonsound: soundChips&soundMoonsound != 0,
		IsMIDI:      soundChips&soundMIDI != 0,

		Genre1: GenreFromValue(genre1),
		Genre2: GenreFromValue(genre2),

		ScreenshotSuffix: suffix,
	}
}

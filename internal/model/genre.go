package model

// Genre is one of the two genre classifications attached to a game. The
// numeric values match the Generation-MSX genre codes used in the extra-data
// overlay and are stored as-is in the catalog database.
type Genre int

const (
	GenreUnknown Genre = iota
	GenreAction
	GenreAdult
	GenreAdventureAll
	GenreAdventurePointAndClick
	GenreAdventureTextAndGfx
	GenreAdventureTextOnly
	GenreArcade
	GenreBoardGames
	GenreBreakOut
	GenreCardGames
	GenreCommunication
	GenreCompiler
	GenreDatabase
	GenreDTP
	GenreEducational
	GenreFighting
	GenreFinancial
	GenreGamblingFruitMachine
	GenreGraphics
	GenreMiscellaneous
	GenreOffice
	GenreOperatingSystem
	GenreParody
	GenrePinball
	GenrePlatform
	GenrePuzzle
	GenreQuiz
	GenreRacing
	GenreRemake
	GenreRPG
	GenreShootEmUpAll
	GenreShootEmUpFirstPersonShooter
	GenreShootEmUpHorizontal
	GenreShootEmUpIsometric
	GenreShootEmUpMultiDirectional
	GenreShootEmUpVertical
	GenreSimulation
	GenreSound
	GenreSportGames
	GenreSportManagement
	GenreSpreadsheet
	GenreStrategy
	GenreTool
	GenreVariety
	GenreWarGames
	GenreWordProcessor
	GenreMaze
	GenrePong
	GenreBeatEmUp
	GenreDexterity
)

var genreNames = map[Genre]string{
	GenreUnknown:                     "",
	GenreAction:                      "Action",
	GenreAdult:                       "Adult",
	GenreAdventureAll:                "Adventure (All)",
	GenreAdventurePointAndClick:      "Adventure | Point and Click",
	GenreAdventureTextAndGfx:         "Adventure | Text and Gfx",
	GenreAdventureTextOnly:           "Adventure | Text only",
	GenreArcade:                      "Arcade",
	GenreBoardGames:                  "Board Games",
	GenreBreakOut:                    "Break-out",
	GenreCardGames:                   "Card Games",
	GenreCommunication:               "Communication",
	GenreCompiler:                    "Compiler",
	GenreDatabase:                    "Database",
	GenreDTP:                         "DTP",
	GenreEducational:                 "Educational",
	GenreFighting:                    "Fighting",
	GenreFinancial:                   "Financial",
	GenreGamblingFruitMachine:        "Gambling / Fruit Machine",
	GenreGraphics:                    "Graphics",
	GenreMiscellaneous:               "Miscellaneous",
	GenreOffice:                      "Office",
	GenreOperatingSystem:             "Operating System",
	GenreParody:                      "Parody",
	GenrePinball:                     "Pinball",
	GenrePlatform:                    "Platform",
	GenrePuzzle:                      "Puzzle",
	GenreQuiz:                        "Quiz",
	GenreRacing:                      "Racing",
	GenreRemake:                      "Remake",
	GenreRPG:                         "RPG",
	GenreShootEmUpAll:                "Shoot-'em-up (All)",
	GenreShootEmUpFirstPersonShooter: "Shoot-'em-up | First-person shooter",
	GenreShootEmUpHorizontal:         "Shoot-'em-up | Horizontal",
	GenreShootEmUpIsometric:          "Shoot-'em-up | Isometric",
	GenreShootEmUpMultiDirectional:   "Shoot-'em-up | Multi-directional",
	GenreShootEmUpVertical:           "Shoot-'em-up | Vertical",
	GenreSimulation:                  "Simulation",
	GenreSound:                       "Sound",
	GenreSportGames:                  "Sport Games",
	GenreSportManagement:             "Sport Management",
	GenreSpreadsheet:                 "Spreadsheet",
	GenreStrategy:                    "Strategy",
	GenreTool:                        "Tool",
	GenreVariety:                     "Variety",
	GenreWarGames:                    "War Games",
	GenreWordProcessor:               "Word Processor",
	GenreMaze:                        "Maze",
	GenrePong:                        "Pong",
	GenreBeatEmUp:                    "Beat-'em-up",
	GenreDexterity:                   "Dexterity",
}

// String returns the display name of the genre, empty for GenreUnknown.
func (g Genre) String() string {
	return genreNames[g]
}

// GenreFromValue maps a numeric genre code to a Genre, returning
// GenreUnknown for out-of-range codes.
func GenreFromValue(value int) Genre {
	if value < int(GenreUnknown) || value > int(GenreDexterity) {
		return GenreUnknown
	}
	return Genre(value)
}

package store

// gameColumnsDef is shared between the live table and the backup table; the
// backup table points its IDDB at database_backup instead and drops the name
// uniqueness, matching the snapshot semantics.
const gameColumnsDef = `
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	info TEXT NOT NULL DEFAULT '',
	machine TEXT NOT NULL DEFAULT '',
	romA TEXT NOT NULL DEFAULT '',
	extension_rom TEXT NOT NULL DEFAULT '',
	romB TEXT NOT NULL DEFAULT '',
	diskA TEXT NOT NULL DEFAULT '',
	diskB TEXT NOT NULL DEFAULT '',
	tape TEXT NOT NULL DEFAULT '',
	harddisk TEXT NOT NULL DEFAULT '',
	laserdisc TEXT NOT NULL DEFAULT '',
	tcl_script TEXT NOT NULL DEFAULT '',
	msx INTEGER NOT NULL DEFAULT 0,
	msx2 INTEGER NOT NULL DEFAULT 0,
	msx2plus INTEGER NOT NULL DEFAULT 0,
	turbo_r INTEGER NOT NULL DEFAULT 0,
	psg INTEGER NOT NULL DEFAULT 0,
	scc INTEGER NOT NULL DEFAULT 0,
	scc_i INTEGER NOT NULL DEFAULT 0,
	pcm INTEGER NOT NULL DEFAULT 0,
	msx_music INTEGER NOT NULL DEFAULT 0,
	msx_audio INTEGER NOT NULL DEFAULT 0,
	moonsound INTEGER NOT NULL DEFAULT 0,
	midi INTEGER NOT NULL DEFAULT 0,
	genre1 INTEGER NOT NULL DEFAULT 0,
	genre2 INTEGER NOT NULL DEFAULT 0,
	msx_genid INTEGER NOT NULL DEFAULT 0,
	screenshot_suffix TEXT NOT NULL DEFAULT '',
	sha1 TEXT NOT NULL DEFAULT '',
	size INTEGER NOT NULL DEFAULT 0,
	fdd_mode INTEGER NOT NULL DEFAULT 0,`

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS database (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);`,

	`CREATE TABLE IF NOT EXISTS database_backup (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	time TEXT NOT NULL,
	IDDB INTEGER NOT NULL REFERENCES database (ID) ON DELETE CASCADE
);`,

	`CREATE TABLE IF NOT EXISTS game (` + gameColumnsDef + `
	IDDB INTEGER NOT NULL REFERENCES database (ID) ON DELETE CASCADE,
	UNIQUE (name, IDDB)
);`,

	`CREATE TABLE IF NOT EXISTS game_backup (` + gameColumnsDef + `
	IDDB INTEGER NOT NULL REFERENCES database_backup (ID) ON DELETE CASCADE
);`,

	`CREATE TABLE IF NOT EXISTS favorite (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	IDGAME INTEGER NOT NULL UNIQUE REFERENCES game (ID) ON DELETE CASCADE
);`,
}

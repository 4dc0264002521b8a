package store

const (
	createSongsTable = `
		CREATE TABLE IF NOT EXISTS songs (
			song_id   varchar PRIMARY KEY,
			title     varchar NOT NULL,
			artist_id varchar NOT NULL,
			year      int NOT NULL,
			duration  double precision NOT NULL
		)`

	createArtistsTable = `
		CREATE TABLE IF NOT EXISTS artists (
			artist_id varchar PRIMARY KEY,
			name      varchar NOT NULL,
			location  varchar,
			latitude  double precision,
			longitude double precision
		)`

	createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			user_id    int PRIMARY KEY,
			first_name varchar,
			last_name  varchar,
			gender     varchar(1),
			level      varchar NOT NULL
		)`

	createTimeTable = `
		CREATE TABLE IF NOT EXISTS "time" (
			start_time timestamptz PRIMARY KEY,
			hour       int NOT NULL,
			day        int NOT NULL,
			week       int NOT NULL,
			month      int NOT NULL,
			year       int NOT NULL,
			weekday    int NOT NULL
		)`

	createSongplaysTable = `
		CREATE TABLE IF NOT EXISTS songplays (
			songplay_id uuid PRIMARY KEY,
			start_time  timestamptz NOT NULL,
			user_id     int NOT NULL,
			level       varchar NOT NULL,
			song_id     varchar,
			artist_id   varchar,
			session_id  int NOT NULL,
			location    text,
			user_agent  text
		)`
)

const (
	dropSongplaysTable = `DROP TABLE IF EXISTS songplays`
	dropUsersTable     = `DROP TABLE IF EXISTS users`
	dropSongsTable     = `DROP TABLE IF EXISTS songs`
	dropArtistsTable   = `DROP TABLE IF EXISTS artists`
	dropTimeTable      = `DROP TABLE IF EXISTS "time"`
)

const (
	insertSong = `
		INSERT INTO songs (song_id, title, artist_id, year, duration)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (song_id) DO NOTHING`

	insertArtist = `
		INSERT INTO artists (artist_id, name, location, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (artist_id) DO NOTHING`

	// level is the one mutable attribute; the latest event wins
	insertUser = `
		INSERT INTO users (user_id, first_name, last_name, gender, level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET level = EXCLUDED.level`

	insertTime = `
		INSERT INTO "time" (start_time, hour, day, week, month, year, weekday)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (start_time) DO NOTHING`

	insertSongplay = `
		INSERT INTO songplays
			(songplay_id, start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (songplay_id) DO NOTHING`
)

const selectSongByPlay = `
	SELECT s.song_id, s.artist_id
	FROM songs s
	JOIN artists a ON s.artist_id = a.artist_id
	WHERE s.title = $1
	  AND a.name = $2
	  AND s.duration = $3`

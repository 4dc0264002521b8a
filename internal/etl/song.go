package etl

import (
	"bufio"
	"bytes"
	"encoding/json"

	"github.com/vvka-141/playlog/pkg/playlog"
)

// songRecord mirrors one line of a song metadata file. The dataset writes
// one JSON object per line; most files contain exactly one.
type songRecord struct {
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	Year            int      `json:"year"`
	Duration        float64  `json:"duration"`
	ArtistID        string   `json:"artist_id"`
	ArtistName      string   `json:"artist_name"`
	ArtistLocation  *string  `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}

// SongEntry is a parsed song record split into its two dimension rows.
type SongEntry struct {
	Song   playlog.SongRow
	Artist playlog.ArtistRow
}

// ParseSongFile parses the newline-delimited JSON records of a song
// metadata file. Records that fail to parse or lack a song_id or
// artist_id are dropped; skipped reports how many.
func ParseSongFile(content []byte) (entries []SongEntry, skipped int) {
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec songRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			skipped++
			continue
		}
		if rec.SongID == "" || rec.ArtistID == "" {
			skipped++
			continue
		}

		entries = append(entries, SongEntry{
			Song: playlog.SongRow{
				ID:       rec.SongID,
				Title:    rec.Title,
				ArtistID: rec.ArtistID,
				Year:     rec.Year,
				Duration: rec.Duration,
			},
			Artist: playlog.ArtistRow{
				ID:        rec.ArtistID,
				Name:      rec.ArtistName,
				Location:  emptyToNil(rec.ArtistLocation),
				Latitude:  rec.ArtistLatitude,
				Longitude: rec.ArtistLongitude,
			},
		})
	}

	// a line longer than maxLineBytes surfaces as a scanner error; treat
	// the remainder of the file as unparseable
	if sc.Err() != nil {
		skipped++
	}

	return entries, skipped
}

// emptyToNil maps the dataset's empty-string placeholder to a SQL NULL.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// maxLineBytes bounds a single dataset line. Real records are well under
// 4KB; anything bigger is a corrupt file.
const maxLineBytes = 1024 * 1024

package model

import "encoding/json"

// Scalar holds a JSON scalar exactly as it appeared in the source
// document. Numbers keep their original formatting (an int stays "3",
// not "3.000000"), strings are unquoted, null decodes to the empty
// string. Sequence counters and ids are not guaranteed to be numeric,
// so everything downstream treats them as opaque text.
type Scalar struct {
	raw string
}

// NewScalar wraps a literal value. Mostly useful in tests and when
// rehydrating rows from storage.
func NewScalar(v string) Scalar { return Scalar{raw: v} }

func (s *Scalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		s.raw = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s.raw = str
		return nil
	}
	s.raw = string(data)
	return nil
}

func (s Scalar) String() string { return s.raw }

// ---- Raw input records decoded from archive entries ----

// Match is the match-level metadata block. It is present only in the
// first archive entry and reused for every row of the run.
type Match struct {
	Season       Scalar   `json:"season"`
	TournamentID Scalar   `json:"tournament_id"`
	DrawCode     Scalar   `json:"draw_code"`
	Players      []Player `json:"players"`
}

// Player is one roster entry, keyed by team identifier.
type Player struct {
	Team       string `json:"team"`
	ExternalID Scalar `json:"external_id"`
}

// Sequences carries the rally-addressing counters of one document.
// The values are scalar identifiers, not necessarily numeric.
type Sequences struct {
	Set   Scalar `json:"set"`
	Game  Scalar `json:"game"`
	Point Scalar `json:"point"`
	Serve Scalar `json:"serve"`
	Rally Scalar `json:"rally"`
}

// BallPos is a tracked ball position.
type BallPos struct {
	X Scalar `json:"x"`
	Y Scalar `json:"y"`
	Z Scalar `json:"z"`
}

// Ball wraps the ball block of a sample.
type Ball struct {
	Pos *BallPos `json:"pos"`
}

// XY is a tracked player position on the court plane.
type XY struct {
	X Scalar `json:"x"`
	Y Scalar `json:"y"`
}

// PlayerPos is one per-player position entry within a sample.
type PlayerPos struct {
	Team string `json:"team"`
	Pos  *XY    `json:"pos"`
}

// Sample is one timestamped tracking event. Event is "hit", "bounce",
// or empty for plain trajectory samples.
type Sample struct {
	Event   string      `json:"event"`
	Time    float64     `json:"time"`
	Ball    *Ball       `json:"ball"`
	Players []PlayerPos `json:"players"`
}

// Spin describes the spin of one shot.
type Spin struct {
	Type Scalar `json:"type"`
	RPM  Scalar `json:"rpm"`
}

// Shot is one shot record. ShotNo is 1-based and indexes the hit
// samples of the same document positionally.
type Shot struct {
	ShotNo   int     `json:"shot_no"`
	Team     string  `json:"team"`
	TimeUTC  string  `json:"time_utc"`
	Duration float64 `json:"duration"`
	Stroke   Scalar  `json:"stroke"`
	Spin     *Spin   `json:"spin"`
	Call     Scalar  `json:"call"`
}

// Document is the top-level shape of one data/<seq>.json archive entry.
type Document struct {
	Match     *Match     `json:"match"`
	Sequences *Sequences `json:"sequences"`
	Samples   []Sample   `json:"samples"`
	Shots     []Shot     `json:"shots"`
}

// ---- Output rows ----

// RowHeader is the CSV header, in output column order.
var RowHeader = []string{
	"season", "tournament_id", "draw_code",
	"set", "game", "point", "serve", "rally",
	"shot_n", "hitter_external_id",
	"stroke", "spin_type", "spin_rpm", "call",
	"shot_start_timestamp", "shot_end_timestamp",
	"ball_hit_x", "ball_hit_y", "ball_hit_z",
	"ball_bounce_x", "ball_bounce_y",
	"hitter_x", "hitter_y", "receiver_x", "receiver_y",
}

// Row is one flat output record, one per resolvable shot. All fields
// are already rendered as the text that lands in the CSV; bounce
// fields are empty strings when no bounce fell inside the shot window.
type Row struct {
	Season       string
	TournamentID string
	DrawCode     string

	Set   string
	Game  string
	Point string
	Serve string
	Rally string

	ShotN            string
	HitterExternalID string
	Stroke           string
	SpinType         string
	SpinRPM          string
	Call             string

	ShotStartTimestamp string
	ShotEndTimestamp   string

	BallHitX    string
	BallHitY    string
	BallHitZ    string
	BallBounceX string
	BallBounceY string

	HitterX   string
	HitterY   string
	ReceiverX string
	ReceiverY string
}

// Record returns the row's fields in RowHeader order.
func (r *Row) Record() []string {
	return []string{
		r.Season, r.TournamentID, r.DrawCode,
		r.Set, r.Game, r.Point, r.Serve, r.Rally,
		r.ShotN, r.HitterExternalID,
		r.Stroke, r.SpinType, r.SpinRPM, r.Call,
		r.ShotStartTimestamp, r.ShotEndTimestamp,
		r.BallHitX, r.BallHitY, r.BallHitZ,
		r.BallBounceX, r.BallBounceY,
		r.HitterX, r.HitterY, r.ReceiverX, r.ReceiverY,
	}
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	ArchiveHash  string
	Season       string
	TournamentID string
	DrawCode     string
	SourceFile   string
	RowCount     int
	StoredAt     string // YYYY-MM-DD
}

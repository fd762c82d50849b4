// Package extract joins shot records with hit and bounce tracking
// samples and flattens them into output rows.
package extract

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/pable/go-shot-metrics/internal/model"
)

// timeLayout parses shot timestamps: ISO-8601 with fractional seconds
// and a literal trailing "Z".
const timeLayout = "2006-01-02T15:04:05.999999Z"

// Source yields decoded documents in processing order. Next returns
// io.EOF when the sequence is exhausted.
type Source interface {
	Next() (name string, doc *model.Document, err error)
}

// Extractor threads the match metadata captured from the first
// document through the per-document row building.
type Extractor struct {
	match   *model.Match
	players map[string]model.Player
}

func New() *Extractor {
	return &Extractor{}
}

// Match returns the metadata captured from the first document, or nil
// if no document has been processed yet.
func (e *Extractor) Match() *model.Match { return e.match }

// Run drains src and returns all rows in document order.
func (e *Extractor) Run(src Source) ([]model.Row, error) {
	var rows []model.Row
	for {
		name, doc, err := src.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		docRows, err := e.ProcessDocument(name, doc)
		if err != nil {
			return nil, err
		}
		rows = append(rows, docRows...)
	}
}

// ProcessDocument builds the rows for one document. The first call
// captures the match metadata and player roster; later documents omit
// the match block and reuse it.
func (e *Extractor) ProcessDocument(name string, doc *model.Document) ([]model.Row, error) {
	if e.match == nil {
		if doc.Match == nil {
			return nil, fmt.Errorf("%s: first document has no match metadata", name)
		}
		e.match = doc.Match
		e.players = make(map[string]model.Player, len(doc.Match.Players))
		for _, p := range doc.Match.Players {
			e.players[p.Team] = p
		}
	}

	if doc.Sequences == nil {
		return nil, fmt.Errorf("%s: missing sequences", name)
	}
	seq := doc.Sequences

	// Partition samples by event tag; untagged samples are plain
	// trajectory points and play no role here.
	var hits, bounces []model.Sample
	for _, s := range doc.Samples {
		switch s.Event {
		case "hit":
			hits = append(hits, s)
		case "bounce":
			bounces = append(bounces, s)
		}
	}

	var rows []model.Row
	for _, shot := range doc.Shots {
		// A shot past the available hit samples has no position
		// data to join against; drop it.
		if shot.ShotNo > len(hits) {
			continue
		}

		row, err := e.buildRow(name, seq, shot, hits, bounces)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

func (e *Extractor) buildRow(name string, seq *model.Sequences, shot model.Shot, hits, bounces []model.Sample) (*model.Row, error) {
	start, err := time.Parse(timeLayout, shot.TimeUTC)
	if err != nil {
		return nil, fmt.Errorf("%s: shot %d: parse time_utc: %w", name, shot.ShotNo, err)
	}
	end := start.Add(time.Duration(shot.Duration * float64(time.Second)))

	// shot_no indexes the hit list positionally; hits carry no shot
	// number of their own.
	hit := hits[shot.ShotNo-1]
	if hit.Ball == nil || hit.Ball.Pos == nil {
		return nil, fmt.Errorf("%s: shot %d: hit sample has no ball position", name, shot.ShotNo)
	}
	hitBall := hit.Ball.Pos

	// First bounce strictly inside the shot window (hit.time,
	// hit.time+duration); no match leaves the bounce fields empty.
	var bounceX, bounceY string
	for _, b := range bounces {
		if hit.Time < b.Time && b.Time < hit.Time+shot.Duration {
			if b.Ball == nil || b.Ball.Pos == nil {
				return nil, fmt.Errorf("%s: shot %d: bounce sample has no ball position", name, shot.ShotNo)
			}
			bounceX = b.Ball.Pos.X.String()
			bounceY = b.Ball.Pos.Y.String()
			break
		}
	}

	// Hitter first, receiver second. Stable so extra entries keep
	// their relative order.
	positions := append([]model.PlayerPos(nil), hit.Players...)
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Team == shot.Team && positions[j].Team != shot.Team
	})
	if len(positions) < 2 {
		return nil, fmt.Errorf("%s: shot %d: hit sample has %d player positions, want 2", name, shot.ShotNo, len(positions))
	}
	hitter, receiver := positions[0], positions[1]
	if hitter.Pos == nil || receiver.Pos == nil {
		return nil, fmt.Errorf("%s: shot %d: player position missing pos", name, shot.ShotNo)
	}

	player, ok := e.players[shot.Team]
	if !ok {
		return nil, fmt.Errorf("%s: shot %d: team %q not in match roster", name, shot.ShotNo, shot.Team)
	}

	if shot.Spin == nil {
		return nil, fmt.Errorf("%s: shot %d: missing spin", name, shot.ShotNo)
	}

	return &model.Row{
		Season:       e.match.Season.String(),
		TournamentID: e.match.TournamentID.String(),
		DrawCode:     e.match.DrawCode.String(),

		Set:   seq.Set.String(),
		Game:  seq.Game.String(),
		Point: seq.Point.String(),
		Serve: seq.Serve.String(),
		Rally: seq.Rally.String(),

		ShotN:            strconv.Itoa(shot.ShotNo),
		HitterExternalID: player.ExternalID.String(),
		Stroke:           shot.Stroke.String(),
		SpinType:         shot.Spin.Type.String(),
		SpinRPM:          shot.Spin.RPM.String(),
		Call:             shot.Call.String(),

		ShotStartTimestamp: shot.TimeUTC,
		ShotEndTimestamp:   formatEndTime(end),

		BallHitX:    hitBall.X.String(),
		BallHitY:    hitBall.Y.String(),
		BallHitZ:    hitBall.Z.String(),
		BallBounceX: bounceX,
		BallBounceY: bounceY,

		HitterX:   hitter.Pos.X.String(),
		HitterY:   hitter.Pos.Y.String(),
		ReceiverX: receiver.Pos.X.String(),
		ReceiverY: receiver.Pos.Y.String(),
	}, nil
}

// formatEndTime renders the computed end time as seconds-precision
// ISO-8601, microseconds only when the fractional part is non-zero,
// with a literal "Z" appended. Downstream consumers match on this
// exact shape, so the fractional digits of the input are not restored.
func formatEndTime(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05")
	if micro := t.Nanosecond() / 1000; micro != 0 {
		s += fmt.Sprintf(".%06d", micro)
	}
	return s + "Z"
}

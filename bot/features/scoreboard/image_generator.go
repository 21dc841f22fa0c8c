package scoreboard

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"

	"scoreboard/bot/common"
	"scoreboard/domain/entities"
)

// maxRenderedNameLen caps player names in the rendered table so the score
// column never gets overrun
const maxRenderedNameLen = 15

// boardColumn is one column of the rendered leaderboard table
type boardColumn struct {
	header string
	x      int
	rgb    [3]float64
}

// boardRow is one rendered leaderboard entry. rank is the global rank, not
// the position on the page.
type boardRow struct {
	rank  int
	cells []string
}

// boardStyle defines the visual style of the rendered table
type boardStyle struct {
	width     int
	padding   int
	rowHeight int
}

// podiumTints maps global ranks 1-3 to their row tint (RGBA)
var podiumTints = map[int][4]float64{
	1: {1, 0.84, 0, 0.1},
	2: {0.8, 0.8, 0.8, 0.08},
	3: {0.8, 0.5, 0.2, 0.06},
}

// podiumColors maps global ranks 1-3 to their rank badge color
var podiumColors = map[int][3]float64{
	1: {1, 0.84, 0},
	2: {0.75, 0.75, 0.75},
	3: {0.8, 0.5, 0.2},
}

// LeaderboardImageGenerator renders a leaderboard page as a PNG table
type LeaderboardImageGenerator struct {
	style boardStyle
}

// NewLeaderboardImageGenerator creates a generator with the default style
func NewLeaderboardImageGenerator() *LeaderboardImageGenerator {
	return &LeaderboardImageGenerator{
		style: boardStyle{
			width:     320,
			padding:   15,
			rowHeight: 26,
		},
	}
}

// leaderboardRows converts one page of records into table rows. startRank is
// the global rank of the first record, so later pages keep board-wide ranks.
func leaderboardRows(records []*entities.ScoreRecord, startRank int) []boardRow {
	rows := make([]boardRow, len(records))
	for i, record := range records {
		name := record.PlayerName
		if len(name) > maxRenderedNameLen {
			name = name[:maxRenderedNameLen-1] + "…"
		}

		rank := startRank + i
		rows[i] = boardRow{
			rank: rank,
			cells: []string{
				fmt.Sprintf("%d", rank),
				name,
				common.FormatScore(record.Score),
			},
		}
	}
	return rows
}

// Generate renders one page of records into a PNG table. startRank is the
// global rank of the first record.
func (g *LeaderboardImageGenerator) Generate(records []*entities.ScoreRecord, startRank int) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("row_count", len(records)).
			Debug("Leaderboard image generation completed")
	}()

	columns := []boardColumn{
		{header: "#", x: g.style.padding, rgb: [3]float64{0.85, 0.85, 0.9}},
		{header: "Player", x: g.style.padding + 30, rgb: [3]float64{1, 1, 1}},
		{header: "Score", x: g.style.padding + 210, rgb: [3]float64{1, 1, 1}},
	}
	rows := leaderboardRows(records, startRank)

	// Header band (25px) plus its padding (30px), rows, bottom padding.
	height := 25 + 30 + len(rows)*g.style.rowHeight + 15

	dc := gg.NewContext(g.style.width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	// Vertical gradient background
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(y), float64(g.style.width), float64(y))
		dc.Stroke()
	}

	face, err := loadFont(gomono.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	dc.SetFontFace(face)

	y := float64(25)

	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(g.style.width), 20)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for _, col := range columns {
		drawSharpText(dc, col.header, float64(col.x), y)
	}

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(g.style.width), y+8)
	dc.Stroke()

	y += 30
	for _, row := range rows {
		if tint, ok := podiumTints[row.rank]; ok {
			dc.SetRGBA(tint[0], tint[1], tint[2], tint[3])
		} else {
			dc.SetRGBA(0.5, 0.5, 0.6, 0.02)
		}
		dc.DrawRectangle(0, y-15, float64(g.style.width), float64(g.style.rowHeight))
		dc.Fill()

		if badge, ok := podiumColors[row.rank]; ok {
			dc.SetRGB(badge[0], badge[1], badge[2])
			dc.DrawCircle(float64(g.style.padding+3), y-4, 5)
			dc.Fill()

			dc.SetRGB(0, 0, 0)
			rankFace, _ := loadFont(gobold.TTF, 9)
			dc.SetFontFace(rankFace)
			dc.DrawStringAnchored(row.cells[0], float64(g.style.padding+3), y-5, 0.5, 0.4)
			dc.SetFontFace(face)
		} else {
			dc.SetRGB(columns[0].rgb[0], columns[0].rgb[1], columns[0].rgb[2])
			drawSharpText(dc, row.cells[0], float64(columns[0].x), y)
		}

		dc.SetRGB(columns[1].rgb[0], columns[1].rgb[1], columns[1].rgb[2])
		drawSharpText(dc, row.cells[1], float64(columns[1].x), y)

		// Scores can go negative, so the score cell is colored by sign
		switch {
		case strings.HasPrefix(row.cells[2], "-"):
			dc.SetRGB(1, 0.4, 0.4)
		case row.cells[2] == "0":
			dc.SetRGB(0.8, 0.8, 0.8)
		default:
			dc.SetRGB(0.4, 1, 0.4)
		}
		drawSharpText(dc, row.cells[2], float64(columns[2].x), y)

		y += float64(g.style.rowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// drawSharpText draws text with a subtle shadow pass for perceived sharpness
func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font face from embedded TTF data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	}), nil
}

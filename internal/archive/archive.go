// Package archive exports and imports game sessions as JSON documents.
package archive

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/vovakirdan/tile2048/internal/games/t2048"
)

// Format identifies the document layout. Decode rejects other values.
const Format = "tile2048-session/1"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnknownFormat is returned for documents written by another format version.
var ErrUnknownFormat = errors.New("unknown archive format")

// Document is the on-disk form of one session.
// Logs are base64 encoded, as encoding/json does for byte slices.
type Document struct {
	Format  string `json:"format"`
	ID      string `json:"id,omitempty"`
	Variant string `json:"variant,omitempty"`

	ProbabilityOfFour    float64 `json:"probabilityOfFour"`
	Column               int32   `json:"column"`
	Score                int32   `json:"score"`
	Board                []int32 `json:"board"`
	SpawnLog             []byte  `json:"spawnLog"`
	SpawnCount           int32   `json:"spawnCount"`
	ActionLog            []byte  `json:"actionLog"`
	ActionCount          int32   `json:"actionCount"`
	Mode                 int32   `json:"mode"`
	ReplayCursor         int32   `json:"replayCursor"`
	MaxNumber            int32   `json:"maxNumber"`
	HistoryMaxNumber     int32   `json:"historyMaxNumber"`
	StartTimeEpochMillis int64   `json:"startTimeEpochMillis"`
	Initialized          bool    `json:"initialized"`
}

// NewDocument wraps a record for export.
func NewDocument(id, variant string, rec t2048.Record) Document {
	return Document{
		Format:               Format,
		ID:                   id,
		Variant:              variant,
		ProbabilityOfFour:    rec.ProbabilityOfFour,
		Column:               rec.Column,
		Score:                rec.Score,
		Board:                rec.Board,
		SpawnLog:             rec.SpawnLog,
		SpawnCount:           rec.SpawnCount,
		ActionLog:            rec.ActionLog,
		ActionCount:          rec.ActionCount,
		Mode:                 int32(rec.Mode),
		ReplayCursor:         rec.ReplayCursor,
		MaxNumber:            rec.MaxNumber,
		HistoryMaxNumber:     rec.HistoryMaxNumber,
		StartTimeEpochMillis: rec.StartTimeEpochMillis,
		Initialized:          rec.Initialized,
	}
}

// Record returns the session record held by the document.
func (d Document) Record() t2048.Record {
	return t2048.Record{
		ProbabilityOfFour:    d.ProbabilityOfFour,
		Column:               d.Column,
		Score:                d.Score,
		Board:                d.Board,
		SpawnLog:             d.SpawnLog,
		SpawnCount:           d.SpawnCount,
		ActionLog:            d.ActionLog,
		ActionCount:          d.ActionCount,
		Mode:                 t2048.Mode(d.Mode),
		ReplayCursor:         d.ReplayCursor,
		MaxNumber:            d.MaxNumber,
		HistoryMaxNumber:     d.HistoryMaxNumber,
		StartTimeEpochMillis: d.StartTimeEpochMillis,
		Initialized:          d.Initialized,
	}
}

// Encode writes the document as indented JSON.
func Encode(w io.Writer, doc Document) error {
	if doc.Format == "" {
		doc.Format = Format
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("archive: encode: %w", err)
	}
	return nil
}

// Decode reads a document and validates the session it carries.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("archive: decode: %w", err)
	}
	if doc.Format != Format {
		return Document{}, fmt.Errorf("archive: format %q: %w", doc.Format, ErrUnknownFormat)
	}
	if err := doc.Record().Validate(); err != nil {
		return Document{}, fmt.Errorf("archive: %w", err)
	}
	return doc, nil
}

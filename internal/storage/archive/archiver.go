package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/newthinker/tickr/internal/core"
)

// Record is one archived analysis report.
type Record struct {
	RequestID     string    `json:"request_id" validate:"required,uuid"`
	Symbol        string    `json:"symbol" validate:"required"`
	Market        string    `json:"market,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	Prompt        string    `json:"prompt,omitempty"`
	CreatedAt     time.Time `json:"created_at" validate:"required"`
	CurrentPrice  float64   `json:"current_price"`
	PercentChange float64   `json:"percent_change"`
	Signals       []string  `json:"signals"`
	Report        string    `json:"report" validate:"required"`
}

// Archiver stores generated reports under
// reports/<SYMBOL>/<YYYY-MM-DD>/<request-id>.json.
type Archiver struct {
	storage  Storage
	validate *validator.Validate
}

// NewArchiver wraps a storage backend.
func NewArchiver(storage Storage) *Archiver {
	return &Archiver{
		storage:  storage,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RecordPath returns the archive path for a record.
func RecordPath(rec Record) string {
	return path.Join("reports",
		strings.ToUpper(rec.Symbol),
		rec.CreatedAt.UTC().Format("2006-01-02"),
		rec.RequestID+".json")
}

// Save validates and writes a record, returning its path.
func (a *Archiver) Save(ctx context.Context, rec Record) (string, error) {
	if err := a.validate.Struct(rec); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	if strings.ContainsAny(rec.RequestID, "/\\") || strings.ContainsAny(rec.Symbol, "/\\") {
		return "", core.WrapError(core.ErrArchiveFailed,
			fmt.Errorf("request id and symbol must not contain path separators"))
	}
	if rec.Signals == nil {
		rec.Signals = []string{}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}

	p := RecordPath(rec)
	if err := a.storage.Write(ctx, p, data); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, fmt.Errorf("writing %s: %w", p, err))
	}
	return p, nil
}

// Load reads a record back from its path.
func (a *Archiver) Load(ctx context.Context, p string) (Record, error) {
	data, err := a.storage.Read(ctx, p)
	if err != nil {
		return Record{}, core.WrapError(core.ErrArchiveFailed, fmt.Errorf("reading %s: %w", p, err))
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, core.WrapError(core.ErrArchiveFailed, fmt.Errorf("decoding %s: %w", p, err))
	}
	return rec, nil
}

// List returns the archived record paths for a symbol, oldest day first.
func (a *Archiver) List(ctx context.Context, symbol string) ([]string, error) {
	paths, err := a.storage.List(ctx, path.Join("reports", strings.ToUpper(symbol))+"/")
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	return paths, nil
}

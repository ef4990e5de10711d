// Package csvio holds the collaborators on either side of the engine: the
// record decoder for `type,client,tx,amount` input and the snapshot writer
// for `client,available,held,total,locked` output.
package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/clearstream/ledger-replay/internal/models"
)

// Reader decodes transaction records from CSV. Rows that cannot be framed
// or field-decoded (wrong column count, unknown type, non-integer ids) are
// logged and skipped so one bad line never stops a replay; only errors from
// the underlying reader are passed up as fatal.
type Reader struct {
	cr  *csv.Reader
	log *zap.Logger
	row int
}

func NewReader(r io.Reader, log *zap.Logger) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{cr: cr, log: log}
}

// Next returns the next decodable record, io.EOF at end of input, or a fatal
// read error.
func (r *Reader) Next(ctx context.Context) (models.Transaction, error) {
	for {
		if err := ctx.Err(); err != nil {
			return models.Transaction{}, err
		}

		fields, err := r.cr.Read()
		if errors.Is(err, io.EOF) {
			return models.Transaction{}, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			r.row++
			r.log.Warn("skipping unreadable csv row", zap.Int("row", r.row), zap.Error(err))
			continue
		}
		if err != nil {
			return models.Transaction{}, fmt.Errorf("reading csv: %w", err)
		}

		r.row++
		if r.row == 1 && isHeader(fields) {
			continue
		}

		rec, err := decodeRow(fields)
		if err != nil {
			r.log.Warn("skipping undecodable csv row", zap.Int("row", r.row), zap.Error(err))
			continue
		}
		return rec, nil
	}
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "type")
}

func decodeRow(fields []string) (models.Transaction, error) {
	if len(fields) < 3 || len(fields) > 4 {
		return models.Transaction{}, fmt.Errorf("expected 3 or 4 columns, got %d", len(fields))
	}

	kind, err := models.ParseKind(strings.ToLower(strings.TrimSpace(fields[0])))
	if err != nil {
		return models.Transaction{}, err
	}

	client, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("client column: %w", err)
	}

	tx, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("tx column: %w", err)
	}

	amount := ""
	if len(fields) == 4 {
		amount = strings.TrimSpace(fields[3])
	}

	return models.Transaction{
		Kind:   kind,
		Client: client,
		Tx:     tx,
		Amount: amount,
	}, nil
}

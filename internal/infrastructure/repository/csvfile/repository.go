// Package csvfile loads and stores result rows as delimited text files
// matching the canonical row schema. Both semicolon- and comma-delimited
// files are accepted; columns are addressed by header name, never by index.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/strikelane/bowling-league/internal/domain/result"
)

const dateLayout = "2006-01-02"

// Repository serves result rows loaded from one file. The file is read once
// at construction; ReplaceSeason rewrites it in place.
type Repository struct {
	mu    sync.RWMutex
	path  string
	delim rune
	rows  []result.Row
}

func Open(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read result file %s", path)
	}

	delim := detectDelimiter(data)
	rows, err := Read(bytes.NewReader(data), delim)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse result file %s", path)
	}

	return &Repository{path: path, delim: delim, rows: rows}, nil
}

func (r *Repository) ListBySeason(_ context.Context, league, season string) ([]result.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Row, 0, len(r.rows))
	for _, row := range r.rows {
		if row.League == league && row.Season == season {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *Repository) ListAll(_ context.Context) ([]result.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Row, 0, len(r.rows))
	out = append(out, r.rows...)
	return out, nil
}

// ReplaceSeason swaps one league season's rows and rewrites the backing file.
func (r *Repository) ReplaceSeason(_ context.Context, league, season string, rows []result.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]result.Row, 0, len(r.rows)+len(rows))
	for _, row := range r.rows {
		if row.League == league && row.Season == season {
			continue
		}
		next = append(next, row)
	}
	next = append(next, rows...)

	var buf bytes.Buffer
	if err := Write(&buf, next, r.delim); err != nil {
		return crerr.Wrap(err, "encode result rows")
	}
	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return crerr.Wrapf(err, "write result file %s", r.path)
	}

	r.rows = next
	return nil
}

func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// Read decodes rows from delimited text with a header line.
func Read(src io.Reader, delim rune) ([]result.Row, error) {
	reader := csv.NewReader(src)
	reader.Comma = delim
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []result.Row{}, nil
	}
	if err != nil {
		return nil, crerr.Wrap(err, "read header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range result.Columns {
		if _, ok := index[col]; !ok {
			return nil, crerr.Newf("missing column %q in header", col)
		}
	}

	var rows []result.Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "read line %d", line)
		}

		row, err := parseRow(record, index)
		if err != nil {
			return nil, crerr.Wrapf(err, "line %d", line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string, index map[string]int) (result.Row, error) {
	field := func(col string) string {
		return strings.TrimSpace(record[index[col]])
	}

	var row result.Row
	var err error

	row.Season = field(result.ColSeason)
	row.League = field(result.ColLeague)
	row.Location = field(result.ColLocation)
	row.Team = field(result.ColTeam)
	row.PlayerName = field(result.ColPlayer)
	row.Opponent = field(result.ColOpponent)

	if row.Week, err = strconv.Atoi(field(result.ColWeek)); err != nil {
		return result.Row{}, crerr.Wrap(err, "parse Week")
	}
	if raw := field(result.ColDate); raw != "" {
		if row.Date, err = time.Parse(dateLayout, raw); err != nil {
			return result.Row{}, crerr.Wrap(err, "parse Date")
		}
	}
	if row.PlayersPerTeam, err = strconv.Atoi(field(result.ColPlayersPerTeam)); err != nil {
		return result.Row{}, crerr.Wrap(err, "parse PlayersPerTeam")
	}
	if row.RoundNumber, err = strconv.Atoi(field(result.ColRoundNumber)); err != nil {
		return result.Row{}, crerr.Wrap(err, "parse RoundNumber")
	}
	if row.MatchNumber, err = strconv.Atoi(field(result.ColMatchNumber)); err != nil {
		return result.Row{}, crerr.Wrap(err, "parse MatchNumber")
	}
	if raw := field(result.ColPosition); raw != "" {
		pos, err := strconv.Atoi(raw)
		if err != nil {
			return result.Row{}, crerr.Wrap(err, "parse Position")
		}
		row.Position = result.IntPtr(pos)
	}
	if raw := field(result.ColPlayerID); raw != "" {
		row.PlayerID = result.StringPtr(raw)
	}
	if row.Score, err = strconv.Atoi(field(result.ColScore)); err != nil {
		return result.Row{}, crerr.Wrap(err, "parse Score")
	}
	if raw := field(result.ColPoints); raw != "" {
		if row.Points, err = strconv.ParseFloat(raw, 64); err != nil {
			return result.Row{}, crerr.Wrap(err, "parse Points")
		}
	}
	if row.InputData, err = strconv.ParseBool(field(result.ColInputData)); err != nil {
		return result.Row{}, crerr.Wrap(err, "parse InputData")
	}
	if row.ComputedData, err = strconv.ParseBool(field(result.ColComputedData)); err != nil {
		return result.Row{}, crerr.Wrap(err, "parse ComputedData")
	}

	return row, nil
}

// Write encodes rows with a header line in canonical column order.
func Write(dst io.Writer, rows []result.Row, delim rune) error {
	writer := csv.NewWriter(dst)
	writer.Comma = delim

	if err := writer.Write(result.Columns); err != nil {
		return crerr.Wrap(err, "write header")
	}

	for _, row := range rows {
		record := []string{
			row.Season,
			strconv.Itoa(row.Week),
			formatDate(row.Date),
			row.League,
			strconv.Itoa(row.PlayersPerTeam),
			row.Location,
			strconv.Itoa(row.RoundNumber),
			strconv.Itoa(row.MatchNumber),
			row.Team,
			formatIntPtr(row.Position),
			row.PlayerName,
			formatStringPtr(row.PlayerID),
			row.Opponent,
			strconv.Itoa(row.Score),
			strconv.FormatFloat(row.Points, 'f', -1, 64),
			strconv.FormatBool(row.InputData),
			strconv.FormatBool(row.ComputedData),
		}
		if err := writer.Write(record); err != nil {
			return crerr.Wrap(err, "write row")
		}
	}

	writer.Flush()
	return crerr.Wrap(writer.Error(), "flush")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatStringPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

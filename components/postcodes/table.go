package postcodes

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/au_postcodes.txt
var dataFS embed.FS

const defaultTablePath = "data/au_postcodes.txt"

// Locality is one postcode/locality/state row of the lookup table.
type Locality struct {
	Postcode string `json:"postcode"`
	Locality string `json:"locality"`
	State    string `json:"state"`
}

var (
	defaultOnce     sync.Once
	defaultTable    []Locality
	defaultTableErr error
)

// DefaultTable returns the embedded Australian postcode table. The file is
// parsed once; subsequent calls return a copy of the cached rows.
func DefaultTable() ([]Locality, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultTablePath)
		if err != nil {
			defaultTableErr = err
			return
		}
		defer func() { _ = f.Close() }()

		table, err := LoadTable(f)
		if err != nil {
			defaultTableErr = err
			return
		}
		defaultTable = table
	})

	if defaultTableErr != nil {
		return nil, defaultTableErr
	}
	return append([]Locality{}, defaultTable...), nil
}

// LoadTable reads tab-separated "postcode<TAB>locality<TAB>state" rows.
// Blank lines and lines starting with '#' are skipped, duplicate rows are
// dropped, and the result is sorted by postcode then locality.
func LoadTable(r io.Reader) ([]Locality, error) {
	if r == nil {
		return nil, fmt.Errorf("postcodes: missing reader")
	}

	scanner := bufio.NewScanner(r)
	rows := make([]Locality, 0, 64)
	seen := map[Locality]struct{}{}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) != 3 {
			return nil, fmt.Errorf("postcodes: line %d: expected 3 tab-separated fields, got %d", lineNo, len(parts))
		}

		row := Locality{
			Postcode: strings.TrimSpace(parts[0]),
			Locality: strings.TrimSpace(parts[1]),
			State:    strings.TrimSpace(parts[2]),
		}
		if row.Postcode == "" || row.Locality == "" {
			return nil, fmt.Errorf("postcodes: line %d: postcode and locality must not be blank", lineNo)
		}
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Postcode != rows[j].Postcode {
			return rows[i].Postcode < rows[j].Postcode
		}
		return rows[i].Locality < rows[j].Locality
	})
	return rows, nil
}

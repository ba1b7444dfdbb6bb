// Package trace reads branch trace files: one record per line, a hexadecimal
// branch address followed by an outcome token, `t` (taken) or `n` (not
// taken). The predictor core only ever sees well-formed records; malformed
// lines are rejected here with their line number.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one branch event: the branch instruction's address and whether
// the branch was actually taken.
type Record struct {
	// Address is the branch instruction's program counter.
	Address uint64
	// Taken is the actual branch outcome.
	Taken bool
}

// Reader scans branch records from a trace stream. Use it like
// bufio.Scanner: call Scan until it returns false, then check Err.
type Reader struct {
	scanner *bufio.Scanner
	record  Record
	line    int
	err     error
}

// NewReader creates a Reader over the given trace stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Scan advances to the next record, skipping blank lines. It returns false
// at end of input or on the first malformed line; Err distinguishes the two.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		record, err := parseLine(line)
		if err != nil {
			r.err = fmt.Errorf("trace line %d: %w", r.line, err)
			return false
		}
		r.record = record
		return true
	}

	r.err = r.scanner.Err()
	return false
}

// Record returns the record read by the last successful call to Scan.
func (r *Reader) Record() Record {
	return r.record
}

// Err returns the first error encountered while scanning, or nil if the
// input was exhausted cleanly.
func (r *Reader) Err() error {
	return r.err
}

// parseLine parses one non-blank trace line.
func parseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Record{}, fmt.Errorf("expected \"<hex address> <t|n>\", got %q", line)
	}

	addrText := strings.TrimPrefix(strings.TrimPrefix(fields[0], "0x"), "0X")
	addr, err := strconv.ParseUint(addrText, 16, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid branch address %q: %w", fields[0], err)
	}

	taken, err := parseOutcome(fields[1])
	if err != nil {
		return Record{}, err
	}

	return Record{Address: addr, Taken: taken}, nil
}

// parseOutcome validates the outcome token strictly: only `t` and `n` are
// accepted, so corrupt input fails loudly instead of silently counting as
// not-taken.
func parseOutcome(token string) (bool, error) {
	switch token {
	case "t":
		return true, nil
	case "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid outcome token %q: want t or n", token)
	}
}

// ReadFile reads an entire trace file into memory.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer f.Close()

	var records []Record
	r := NewReader(f)
	for r.Scan() {
		records = append(records, r.Record())
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}

package fixture

import (
	"fmt"

	"stunt.dev/pkg/stunt/builtins"
)

// Journal accumulates rendered lines until flushed to a collector.
type Journal struct {
	Addr  string
	Lines []string
}

// NewJournal opens a journal bound to a collector address.
func NewJournal(addr string) *Journal {
	return &Journal{Addr: addr}
}

// Record renders one entry into the journal.
func (j *Journal) Record(entry any) error {
	line := Render(entry)
	if line == "" {
		return fmt.Errorf("record: nothing to keep")
	}

	j.Lines = append(j.Lines, line)

	return nil
}

// Snapshot reports how many lines the journal holds.
func (j Journal) Snapshot() int {
	return builtins.Length(j.Lines)
}

// Flush stamps a trailer and ships everything recorded so far.
func (j *Journal) Flush() error {
	trailer := fmt.Sprintf("%s %x", Render(Stamp()), builtins.ID(j))

	total := len(trailer)
	for _, line := range j.Lines {
		total += len(line)
	}

	if err := SendReport(j.Addr, total); err != nil {
		return fmt.Errorf("flush %s: %w", trailer, err)
	}

	j.Lines = j.Lines[:0]

	return nil
}

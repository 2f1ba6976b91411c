package event

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ReadAll decodes a whole event CSV, header included. Use the streaming
// validator instead when the file does not fit in memory.
func ReadAll(r io.Reader) ([]Event, error) {
	var out []Event
	if err := gocsv.Unmarshal(r, &out); err != nil {
		return nil, fmt.Errorf("event: decode csv: %w", err)
	}
	return out, nil
}

// WriteAll encodes events as CSV with the canonical header.
func WriteAll(events []Event, w io.Writer) error {
	if err := gocsv.Marshal(&events, w); err != nil {
		return fmt.Errorf("event: encode csv: %w", err)
	}
	return nil
}

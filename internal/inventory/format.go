package inventory

import (
	"encoding/json"
	"fmt"
	"io"
)

// FormatTable writes entries as aligned text to the provided writer.
// Returns the number of entries formatted.
func FormatTable(w io.Writer, entries []Entry, basedir string) int {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No artifacts found in '%s'\n", basedir)
		return 0
	}

	fmt.Fprintf(w, "Artifacts in '%s':\n\n", basedir)

	width := 0
	for _, e := range entries {
		if l := len(e.Key()); l > width {
			width = l
		}
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  %s\n", width, e.Key(), e.File)
	}

	countMsg := "file"
	if len(entries) != 1 {
		countMsg = "files"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(entries), countMsg)

	return len(entries)
}

// FormatJSONL writes entries as line-delimited JSON (JSONL) to the provided writer.
func FormatJSONL(w io.Writer, entries []Entry) error {
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", string(data)); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// Write lists basedir and writes it in the requested format.
func Write(w io.Writer, basedir string, format OutputFormat) error {
	entries, err := List(basedir)
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSONL:
		return FormatJSONL(w, entries)
	case OutputFormatDefault, "":
		FormatTable(w, entries, basedir)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

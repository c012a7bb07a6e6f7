package telemetry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"keywatch/internal/shared"
)

// parseTasklist reads `tasklist /FO CSV /NH` output. Rows without a numeric
// PID are dropped. Thread counts are not part of that format and stay zero.
func parseTasklist(r io.Reader) ([]shared.ProcessRef, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var refs []shared.ProcessRef
	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("tasklist csv: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		pid, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			continue
		}
		refs = append(refs, shared.ProcessRef{
			Pid:  pid,
			Name: strings.TrimSpace(record[0]),
		})
	}
	return refs, nil
}

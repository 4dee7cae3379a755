package report

import (
	"encoding/json"
	"io"

	"github.com/triagelab/logtriage/internal/model"
)

// WriteJSON renders the report as an indented JSON document for piping
// into other tooling.
func WriteJSON(w io.Writer, rep model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

package writers

import (
	"encoding/json"
	"io"

	"taxjoin/internal/dataset"
	"taxjoin/internal/jsonlutil"
	"taxjoin/internal/output"
	"taxjoin/internal/report"
)

func init() {
	Register(output.FormatText, func(w io.Writer, rep output.Report, _ Options) error {
		return report.Write(w, rep)
	})
	Register(output.FormatJSON, func(w io.Writer, rep output.Report, _ Options) error {
		return output.WriteJSON(w, rep)
	})
	Register(output.FormatTSV, func(w io.Writer, rep output.Report, opt Options) error {
		return output.WriteTSV(w, rep.Result.Records, opt.Header)
	})
	Register(output.FormatJSONL, func(w io.Writer, rep output.Report, _ Options) error {
		return WriteRecordsJSONL(w, rep.Result.Records)
	})
}

// WriteRecordsJSONL writes each joined record as one JSON line (v1).
func WriteRecordsJSONL(w io.Writer, list []dataset.JoinedRecord) error {
	return jsonlutil.Write(w, list,
		func(enc *json.Encoder, r dataset.JoinedRecord) error {
			return enc.Encode(output.ToAPIRecord(r))
		},
		IsBrokenPipe,
	)
}

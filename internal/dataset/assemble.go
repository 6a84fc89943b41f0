// internal/dataset/assemble.go
package dataset

// Result is the outcome of one Assemble call.
type Result struct {
	Records  []JoinedRecord
	Lineage  LoadStats
	Sequence LoadStats
	Join     JoinReport
}

// Assemble loads both tables and inner-joins them on the canonical id.
// An empty join is not an error.
func Assemble(lineagePath, sequencePath string, opt Options) (Result, error) {
	var res Result
	lins, lst, err := LoadLineageTable(lineagePath, opt)
	res.Lineage = lst
	if err != nil {
		return res, err
	}
	seqs, sst, err := LoadSequenceTable(sequencePath, opt)
	res.Sequence = sst
	if err != nil {
		return res, err
	}
	res.Records, res.Join = Join(seqs, lins)
	res.Join.Log(opt.Logger)
	return res, nil
}

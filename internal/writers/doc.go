// Package writers turns a finished run into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (text report, JSON/JSONL/TSV).
//   • dataset stays domain-only; app stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers

// internal/lineage/parse.go
package lineage

import (
	"regexp"
	"strings"
)

// SegmentSep separates rank segments in a lineage string.
const SegmentSep = ";"

// segmentPattern isolates the trailing _<digits> database id: the name is the
// shortest run that still leaves an underscore and digits up to the end.
var segmentPattern = regexp.MustCompile(`^([kpcofgs])__(.+?)_\p{Nd}+$`)

// ParseLineage decomposes "k__Name_1;p__Name_2;..." into rank -> name.
// Segments that do not match are skipped. Ranks not present are absent from
// the map. When normalize is set every name goes through NormalizeName.
func ParseLineage(line string, normalize bool) map[Rank]string {
	out, _ := parseLineage(line, normalize)
	return out
}

// parseLineage also reports how many non-empty segments were skipped.
func parseLineage(line string, normalize bool) (map[Rank]string, int) {
	out := make(map[Rank]string, len(Ranks))
	skipped := 0
	for _, seg := range strings.Split(line, SegmentSep) {
		rank, name, ok := ParseSegment(seg)
		if !ok {
			if seg != "" {
				skipped++
			}
			continue
		}
		if normalize {
			name = NormalizeName(name)
		}
		out[rank] = name
	}
	return out, skipped
}

// ParseSegment parses one "<letter>__<Name>_<digits>" segment.
func ParseSegment(seg string) (Rank, string, bool) {
	m := segmentPattern.FindStringSubmatch(seg)
	if m == nil {
		return "", "", false
	}
	r, ok := RankForLetter(m[1][0])
	if !ok {
		return "", "", false
	}
	return r, m[2], true
}

// Parse is ParseLineage with every rank filled in and a count of skipped segments.
func Parse(line string, normalize bool) (Lineage, int) {
	m, skipped := parseLineage(line, normalize)
	return FromMap(m), skipped
}

// NormalizeName lower-cases a name and turns spaces into underscores.
//
//	"Clydonella sawyeri" -> "clydonella_sawyeri"
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(name), " ", "_"))
}

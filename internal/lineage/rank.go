// internal/lineage/rank.go
package lineage

// Rank is one of the seven taxonomic levels.
type Rank string

const (
	Kingdom Rank = "kingdom"
	Phylum  Rank = "phylum"
	Class   Rank = "class"
	Order   Rank = "order"
	Family  Rank = "family"
	Genus   Rank = "genus"
	Species Rank = "species"
)

// Ranks lists every rank from kingdom down to species.
var Ranks = [...]Rank{Kingdom, Phylum, Class, Order, Family, Genus, Species}

var rankByLetter = map[byte]Rank{
	'k': Kingdom,
	'p': Phylum,
	'c': Class,
	'o': Order,
	'f': Family,
	'g': Genus,
	's': Species,
}

// RankForLetter maps a lineage prefix letter to its rank.
func RankForLetter(b byte) (Rank, bool) {
	r, ok := rankByLetter[b]
	return r, ok
}

// Lineage holds one name per rank. Absent ranks are empty strings.
type Lineage struct {
	Kingdom string
	Phylum  string
	Class   string
	Order   string
	Family  string
	Genus   string
	Species string
}

// Get returns the name stored for r.
func (l Lineage) Get(r Rank) string {
	switch r {
	case Kingdom:
		return l.Kingdom
	case Phylum:
		return l.Phylum
	case Class:
		return l.Class
	case Order:
		return l.Order
	case Family:
		return l.Family
	case Genus:
		return l.Genus
	case Species:
		return l.Species
	}
	return ""
}

// Set stores name under r. Unknown ranks are ignored.
func (l *Lineage) Set(r Rank, name string) {
	switch r {
	case Kingdom:
		l.Kingdom = name
	case Phylum:
		l.Phylum = name
	case Class:
		l.Class = name
	case Order:
		l.Order = name
	case Family:
		l.Family = name
	case Genus:
		l.Genus = name
	case Species:
		l.Species = name
	}
}

// Values returns the names in rank order.
func (l Lineage) Values() [len(Ranks)]string {
	var out [len(Ranks)]string
	for i, r := range Ranks {
		out[i] = l.Get(r)
	}
	return out
}

// FromMap fills every rank from m, defaulting missing ranks to "".
func FromMap(m map[Rank]string) Lineage {
	var l Lineage
	for r, name := range m {
		l.Set(r, name)
	}
	return l
}

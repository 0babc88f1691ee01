package card

// Index maps each card to the cards it structurally requires or is bonded
// to. It is built once per repository snapshot as plain adjacency maps of
// codes — no live references into the cache, so its lifetime is independent
// of the repository's.
type Index struct {
	required map[string]map[string]struct{}
	bonded   map[string]map[string]struct{}
}

// BuildIndex constructs the relationship index for one snapshot.
//
// Required edges are directional and kept exactly as declared. Bonded edges
// are symmetrized: if A declares a bond to B, both directions are indexed
// even when the source data only records one side.
func BuildIndex(snapshot *Snapshot) *Index {
	index := &Index{
		required: make(map[string]map[string]struct{}),
		bonded:   make(map[string]map[string]struct{}),
	}

	for code, c := range snapshot.cardsByCode {
		for _, requiredCode := range c.RequiredCards {
			index.addRequired(code, requiredCode)
		}
		for _, bondedCode := range c.BondedCards {
			index.addBonded(code, bondedCode)
			index.addBonded(bondedCode, code)
		}
	}

	return index
}

// RequiredFor returns the set of codes that must accompany the given card.
// The returned map is shared; callers must not mutate it.
func (index *Index) RequiredFor(code string) map[string]struct{} {
	return index.required[code]
}

// BondedWith returns the set of codes bonded to the given card.
// The returned map is shared; callers must not mutate it.
func (index *Index) BondedWith(code string) map[string]struct{} {
	return index.bonded[code]
}

func (index *Index) addRequired(from, to string) {
	if index.required[from] == nil {
		index.required[from] = make(map[string]struct{})
	}
	index.required[from][to] = struct{}{}
}

func (index *Index) addBonded(from, to string) {
	if index.bonded[from] == nil {
		index.bonded[from] = make(map[string]struct{})
	}
	index.bonded[from][to] = struct{}{}
}

package di

// Candidate is a resolvable constructor and its declaration index.
type Candidate struct {
	Index       int
	Constructor Constructor
}

// SearchResult classifies every constructor of an implementation against
// the bindings present when the search ran.
type SearchResult struct {
	Target     string
	Resolvable []Candidate
	Blocked    []BlockedConstructor
}

// Search classifies the constructors of impl. A constructor is resolvable
// when every parameter key is provided by the table; otherwise it is
// blocked and each unprovided parameter is recorded. The result is never
// cached because later registrations can unblock constructors.
func (r *Registry) Search(impl Implementation) SearchResult {
	res := SearchResult{Target: impl.Name}
	for i, ctor := range impl.Constructors {
		var missing []MissingParam
		for pos, p := range ctor.Params {
			if !r.Provides(p) {
				missing = append(missing, MissingParam{Position: pos, Key: p})
			}
		}
		if len(missing) == 0 {
			res.Resolvable = append(res.Resolvable, Candidate{Index: i, Constructor: ctor})
			continue
		}
		res.Blocked = append(res.Blocked, BlockedConstructor{
			Index:     i,
			Signature: ctor.Signature(impl.Name),
			Missing:   missing,
		})
	}
	return res
}

// Select picks the resolvable constructor with the fewest parameters; the
// earliest declared wins a tie. With nothing resolvable it returns a
// ResolutionError listing every blocked constructor.
func (s SearchResult) Select() (Candidate, error) {
	if len(s.Resolvable) == 0 {
		return Candidate{}, &ResolutionError{Target: s.Target, Blocked: s.Blocked}
	}
	best := s.Resolvable[0]
	for _, c := range s.Resolvable[1:] {
		if c.Constructor.Arity() < best.Constructor.Arity() {
			best = c
		}
	}
	return best, nil
}

// OK reports whether at least one constructor is resolvable.
func (s SearchResult) OK() bool {
	return len(s.Resolvable) > 0
}

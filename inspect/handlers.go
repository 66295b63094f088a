package inspect

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ioc/di"
	apperrors "github.com/kbukum/ioc/errors"
	"github.com/kbukum/ioc/observability"
	"github.com/kbukum/ioc/version"
)

// Binding is the JSON form of a di.RegistrationInfo.
type Binding struct {
	Key            string `json:"key"`
	Type           string `json:"type"`
	Lifecycle      string `json:"lifecycle"`
	Implementation string `json:"implementation,omitempty"`
	Materialized   bool   `json:"materialized"`
}

// Candidate is a resolvable constructor in a Diagnosis.
type Candidate struct {
	Index     int    `json:"index"`
	Signature string `json:"signature"`
	Arity     int    `json:"arity"`
}

// Blocked is a blocked constructor in a Diagnosis.
type Blocked struct {
	Index     int       `json:"index"`
	Signature string    `json:"signature"`
	Missing   []Missing `json:"missing"`
}

// Missing is one unresolved parameter.
type Missing struct {
	Position int    `json:"position"`
	Key      string `json:"key"`
}

// Diagnosis is the constructor search result for one binding.
type Diagnosis struct {
	Key    string `json:"key"`
	Target string `json:"target,omitempty"`
	// Value is true for bindings registered as pre-built instances, which
	// have no constructors to search.
	Value      bool        `json:"value"`
	Resolvable []Candidate `json:"resolvable"`
	Blocked    []Blocked   `json:"blocked"`
	// Selected is the index of the constructor a build would run, or -1.
	Selected int `json:"selected"`
}

// Resolution reports a successful resolve.
type Resolution struct {
	Key  string `json:"key"`
	Type string `json:"type"`
}

func toBinding(r di.RegistrationInfo) Binding {
	return Binding{
		Key:            r.Key.String(),
		Type:           r.Key.ShortString(),
		Lifecycle:      r.Lifecycle.String(),
		Implementation: r.Implementation,
		Materialized:   r.Materialized,
	}
}

func toDiagnosis(key di.Key, res di.SearchResult) Diagnosis {
	d := Diagnosis{
		Key:        key.String(),
		Target:     res.Target,
		Resolvable: make([]Candidate, 0, len(res.Resolvable)),
		Blocked:    make([]Blocked, 0, len(res.Blocked)),
		Selected:   -1,
	}
	for _, c := range res.Resolvable {
		d.Resolvable = append(d.Resolvable, Candidate{
			Index:     c.Index,
			Signature: c.Constructor.Signature(res.Target),
			Arity:     c.Constructor.Arity(),
		})
	}
	for _, b := range res.Blocked {
		missing := make([]Missing, len(b.Missing))
		for i, m := range b.Missing {
			missing[i] = Missing{Position: m.Position, Key: m.Key.String()}
		}
		d.Blocked = append(d.Blocked, Blocked{Index: b.Index, Signature: b.Signature, Missing: missing})
	}
	if selected, err := res.Select(); err == nil {
		d.Selected = selected.Index
	}
	return d
}

// lookup finds the binding whose qualified or short type name equals name.
// A qualified match wins. A short name shared by several bindings is
// ambiguous and yields an AMBIGUOUS_KEY error listing the qualified names.
func (s *Server) lookup(name string) (di.Key, error) {
	var matches []di.Key
	for _, r := range s.container.Registrations() {
		if r.Key.String() == name {
			return r.Key, nil
		}
		if r.Key.ShortString() == name {
			matches = append(matches, r.Key)
		}
	}
	switch len(matches) {
	case 0:
		return di.Key{}, apperrors.NotRegistered(name)
	case 1:
		return matches[0], nil
	default:
		candidates := make([]string, len(matches))
		for i, k := range matches {
			candidates[i] = k.String()
		}
		return di.Key{}, apperrors.AmbiguousKey(name, candidates)
	}
}

func (s *Server) keyParam(c *gin.Context) (di.Key, bool) {
	key, err := s.lookup(c.Param("key"))
	if err != nil {
		RespondWithError(c, err)
		return di.Key{}, false
	}
	return key, true
}

func (s *Server) handleHealth(c *gin.Context) {
	health := observability.NewServiceHealth(s.service, version.GetShortVersion())
	health.AddComponent(observability.CheckContainer(s.container))

	status := http.StatusOK
	if health.Status == observability.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}

func (s *Server) handleVersion(c *gin.Context) {
	RespondOK(c, version.GetVersionInfo())
}

func (s *Server) handleBindings(c *gin.Context) {
	regs := s.container.Registrations()
	out := make([]Binding, len(regs))
	for i, r := range regs {
		out[i] = toBinding(r)
	}
	RespondOK(c, out)
}

func (s *Server) handleDiagnose(c *gin.Context) {
	key, ok := s.keyParam(c)
	if !ok {
		return
	}
	res, ok := s.container.Diagnose(key)
	if !ok {
		RespondOK(c, Diagnosis{
			Key:        key.String(),
			Value:      true,
			Resolvable: []Candidate{},
			Blocked:    []Blocked{},
			Selected:   -1,
		})
		return
	}
	RespondOK(c, toDiagnosis(key, res))
}

func (s *Server) handleResolve(c *gin.Context) {
	key, ok := s.keyParam(c)
	if !ok {
		return
	}
	instance, found, err := s.container.Resolve(c.Request.Context(), key)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	if !found {
		// Reset or re-registration raced with the lookup.
		RespondWithError(c, apperrors.NotRegistered(key.String()))
		return
	}
	RespondOK(c, Resolution{Key: key.String(), Type: fmt.Sprintf("%T", instance)})
}

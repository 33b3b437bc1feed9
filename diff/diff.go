package diff

import (
	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/scan"
	"go.jacobcolvin.com/lazytree/tree"
)

// NumberMode picks how two number leaves are compared.
type NumberMode int

const (
	// Textual compares numbers by their exact source declaration, so "1.0"
	// and "1.00" differ even though they parse to the same float.
	Textual NumberMode = iota
	// Numeric compares numbers by their parsed float64 value.
	Numeric
)

// OrderPolicy governs one collection kind's sensitivity to member/element
// position and to the presence of entries the other side lacks.
type OrderPolicy struct {
	AnyOrder      bool
	AnyAdditional bool
}

// Strict is the zero-value policy: position matters and any entry on the
// actual side not matched by the expected side is reported.
var Strict = OrderPolicy{}

// Lenient ignores both position and additional entries.
var Lenient = OrderPolicy{AnyOrder: true, AnyAdditional: true}

// Mode configures one [Compare] run: independent policies for arrays and
// objects, plus how numbers are compared.
type Mode struct {
	Arrays  OrderPolicy
	Objects OrderPolicy
	Numbers NumberMode
}

// DefaultMode is fully strict: ordered arrays and objects, textual number
// comparison.
func DefaultMode() Mode {
	return Mode{Arrays: Strict, Objects: Strict, Numbers: Textual}
}

// LenientMode ignores array/object order and tolerates additional entries
// on the actual side; numbers compare by parsed value.
func LenientMode() Mode {
	return Mode{Arrays: Lenient, Objects: Lenient, Numbers: Numeric}
}

// Kind identifies what relationship one [Difference] reports.
type Kind string

const (
	// Less reports a value present in expected but absent from actual.
	Less Kind = "LESS"
	// More reports a value present in actual but not accounted for in
	// expected.
	More Kind = "MORE"
	// Sort reports a value present on both sides but out of position
	// under a strict-order policy.
	Sort Kind = "SORT"
	// NotEqual reports two leaves of the same kind with different values.
	NotEqual Kind = "NEQ"
)

// Difference is one entry of a [Compare] result.
type Difference struct {
	Kind     Kind
	Path     path.Path
	Expected any
	Actual   any
}

// PropertyInfo resolves per-path overrides to the ambient [Mode]'s
// collection policies, derived from the expected side's schema
// annotations (order/additional overrides per property or per collection
// value type). A nil PropertyInfo applies the ambient Mode everywhere.
type PropertyInfo struct {
	ArrayPolicy  func(p path.Path) (OrderPolicy, bool)
	ObjectPolicy func(p path.Path) (OrderPolicy, bool)
}

func (pi *PropertyInfo) arrayPolicy(p path.Path, fallback OrderPolicy) OrderPolicy {
	if pi == nil || pi.ArrayPolicy == nil {
		return fallback
	}

	if policy, ok := pi.ArrayPolicy(p); ok {
		return policy
	}

	return fallback
}

func (pi *PropertyInfo) objectPolicy(p path.Path, fallback OrderPolicy) OrderPolicy {
	if pi == nil || pi.ObjectPolicy == nil {
		return fallback
	}

	if policy, ok := pi.ObjectPolicy(p); ok {
		return policy
	}

	return fallback
}

type comparer struct {
	mode Mode
	info *PropertyInfo
}

// Compare walks expected and actual in lockstep under mode, returning every
// difference found. info may be nil to apply mode uniformly.
func Compare(expected, actual tree.Handle, mode Mode, info *PropertyInfo) ([]Difference, error) {
	c := &comparer{mode: mode, info: info}

	var diffs []Difference

	if err := c.compareValues(expected, actual, &diffs); err != nil {
		return nil, err
	}

	return diffs, nil
}

func (c *comparer) compareValues(expected, actual tree.Handle, diffs *[]Difference) error {
	if expected.IsUndefined() {
		if actual.IsUndefined() {
			return nil
		}

		*diffs = append(*diffs, Difference{Kind: More, Path: actual.Path()})

		return nil
	}

	if actual.IsUndefined() {
		*diffs = append(*diffs, Difference{Kind: Less, Path: expected.Path()})

		return nil
	}

	ek, err := expected.Type()
	if err != nil {
		return err
	}

	ak, err := actual.Type()
	if err != nil {
		return err
	}

	if ek != ak {
		ev, _ := expected.Value()
		av, _ := actual.Value()
		*diffs = append(*diffs, Difference{Kind: NotEqual, Path: expected.Path(), Expected: ev, Actual: av})

		return nil
	}

	switch ek {
	case scan.Object:
		return c.compareObjects(expected, actual, diffs)
	case scan.Array:
		return c.compareArrays(expected, actual, diffs)
	default:
		return c.compareLeaves(expected, actual, ek, diffs)
	}
}

func (c *comparer) compareLeaves(expected, actual tree.Handle, kind scan.Kind, diffs *[]Difference) error {
	equal, err := c.leavesEqual(expected, actual, kind)
	if err != nil {
		return err
	}

	if equal {
		return nil
	}

	ev, _ := expected.Value()
	av, _ := actual.Value()
	*diffs = append(*diffs, Difference{Kind: NotEqual, Path: expected.Path(), Expected: ev, Actual: av})

	return nil
}

func (c *comparer) leavesEqual(expected, actual tree.Handle, kind scan.Kind) (bool, error) {
	if kind == scan.Number && c.mode.Numbers == Numeric {
		ev, err := expected.Value()
		if err != nil {
			return false, err
		}

		av, err := actual.Value()
		if err != nil {
			return false, err
		}

		return ev.(float64) == av.(float64), nil
	}

	ed, err := expected.Declaration()
	if err != nil {
		return false, err
	}

	ad, err := actual.Declaration()
	if err != nil {
		return false, err
	}

	return ed == ad, nil
}

func (c *comparer) compareObjects(expected, actual tree.Handle, diffs *[]Difference) error {
	ek, err := expected.Keys()
	if err != nil {
		return err
	}

	ak, err := actual.Keys()
	if err != nil {
		return err
	}

	policy := c.info.objectPolicy(expected.Path(), c.mode.Objects)

	if policy.AnyOrder {
		return c.compareObjectsAnyOrder(expected, actual, ek, ak, policy, diffs)
	}

	return c.compareObjectsStrict(expected, actual, ek, ak, policy, diffs)
}

func (c *comparer) compareObjectsAnyOrder(expected, actual tree.Handle, ek, ak []string, policy OrderPolicy, diffs *[]Difference) error {
	actualSet := toSet(ak)

	for _, name := range ek {
		if !actualSet[name] {
			// Missing and extra are mirror images: a member absent from one
			// side is an additional member on the other, so the same
			// tolerance gates both. This keeps diff(a, b) and diff(b, a)
			// the same size with Less and More swapped.
			if !policy.AnyAdditional {
				*diffs = append(*diffs, Difference{Kind: Less, Path: expected.Member(name).Path()})
			}

			continue
		}

		if err := c.compareValues(expected.Member(name), actual.Member(name), diffs); err != nil {
			return err
		}
	}

	if !policy.AnyAdditional {
		expectedSet := toSet(ek)

		for _, name := range ak {
			if !expectedSet[name] {
				*diffs = append(*diffs, Difference{Kind: More, Path: actual.Member(name).Path()})
			}
		}
	}

	return nil
}

func (c *comparer) compareObjectsStrict(expected, actual tree.Handle, ek, ak []string, policy OrderPolicy, diffs *[]Difference) error {
	n := len(ek)
	if len(ak) > n {
		n = len(ak)
	}

	for i := range n {
		switch {
		case i >= len(ek):
			if !policy.AnyAdditional {
				*diffs = append(*diffs, Difference{Kind: More, Path: actual.Member(ak[i]).Path()})
			}
		case i >= len(ak):
			*diffs = append(*diffs, Difference{Kind: Less, Path: expected.Member(ek[i]).Path()})
		case ek[i] != ak[i]:
			*diffs = append(*diffs, Difference{Kind: Sort, Path: expected.Member(ek[i]).Path()})
		default:
			if err := c.compareValues(expected.Member(ek[i]), actual.Member(ak[i]), diffs); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *comparer) compareArrays(expected, actual tree.Handle, diffs *[]Difference) error {
	el, err := expected.List()
	if err != nil {
		return err
	}

	al, err := actual.List()
	if err != nil {
		return err
	}

	policy := c.info.arrayPolicy(expected.Path(), c.mode.Arrays)

	if policy.AnyOrder {
		return c.compareArraysAnyOrder(el, al, policy, diffs)
	}

	return c.compareArraysStrict(el, al, policy, diffs)
}

func (c *comparer) compareArraysStrict(el, al []tree.Handle, policy OrderPolicy, diffs *[]Difference) error {
	n := len(el)
	if len(al) > n {
		n = len(al)
	}

	for i := range n {
		switch {
		case i >= len(el):
			if !policy.AnyAdditional {
				*diffs = append(*diffs, Difference{Kind: More, Path: al[i].Path()})
			}
		case i >= len(al):
			*diffs = append(*diffs, Difference{Kind: Less, Path: el[i].Path()})
		default:
			if err := c.compareValues(el[i], al[i], diffs); err != nil {
				return err
			}
		}
	}

	return nil
}

// compareArraysAnyOrder implements a two-pass bitset-matching algorithm:
// positions that already match are resolved first; each remaining expected
// element is then matched against any still-unmatched actual element
// anywhere in the array, and only truly unmatchable elements produce a
// difference.
func (c *comparer) compareArraysAnyOrder(el, al []tree.Handle, policy OrderPolicy, diffs *[]Difference) error {
	resolved := make([]bool, len(el))
	matchedActual := make([]bool, len(al))

	for i := 0; i < len(el) && i < len(al); i++ {
		equal, err := c.deepEqual(el[i], al[i])
		if err != nil {
			return err
		}

		if equal {
			resolved[i] = true
			matchedActual[i] = true
		}
	}

	for i := range el {
		if resolved[i] {
			continue
		}

		for j := range al {
			if matchedActual[j] {
				continue
			}

			equal, err := c.deepEqual(el[i], al[j])
			if err != nil {
				return err
			}

			if equal {
				resolved[i] = true
				matchedActual[j] = true

				break
			}
		}
	}

	for i := range el {
		if resolved[i] {
			continue
		}

		if i < len(al) {
			if err := c.compareValues(el[i], al[i], diffs); err != nil {
				return err
			}
		} else if !policy.AnyAdditional {
			// Mirror image of the More branch below: an expected element
			// with no actual counterpart is tolerated by the same policy
			// that tolerates an extra actual element, so swapping the
			// arguments swaps Less and More instead of losing one side.
			*diffs = append(*diffs, Difference{Kind: Less, Path: el[i].Path()})
		}
	}

	if !policy.AnyAdditional {
		for j, matched := range matchedActual {
			if !matched {
				*diffs = append(*diffs, Difference{Kind: More, Path: al[j].Path()})
			}
		}
	}

	return nil
}

// deepEqual reports whether two handles are equal under c.mode by running
// a throwaway comparison and checking it produced no differences.
func (c *comparer) deepEqual(expected, actual tree.Handle) (bool, error) {
	var diffs []Difference

	if err := c.compareValues(expected, actual, &diffs); err != nil {
		return false, err
	}

	return len(diffs) == 0, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	return set
}

package symbolic

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// merge builds the symbolic value of If(guard, a, b): Ite applied
// variant-by-variant (spec.md §4.3). a and b must have the same type;
// lists are padded to a common length first since one branch's
// AddFront chain may be structurally longer than the other's.
func merge(s solver.Solver, guard solver.Bool, a, b SymValue) (SymValue, error) {
	switch av := a.(type) {
	case SymBool:
		bv, ok := b.(SymBool)
		if !ok {
			return nil, zerr.New(zerr.TypeMismatch, "symbolic: merge: bool vs %T", b)
		}
		return SymBool{Term: s.IteBool(guard, av.Term, bv.Term)}, nil

	case SymInt:
		bv, ok := b.(SymInt)
		if !ok || !bv.T.Equal(av.T) {
			return nil, zerr.New(zerr.TypeMismatch, "symbolic: merge: int type mismatch")
		}
		term, err := s.IteBitVec(guard, av.Term, bv.Term)
		if err != nil {
			return nil, err
		}
		return SymInt{T: av.T, Term: term}, nil

	case SymList:
		bv, ok := b.(SymList)
		if !ok {
			return nil, zerr.New(zerr.TypeMismatch, "symbolic: merge: list vs %T", b)
		}
		return mergeLists(s, guard, av, bv)

	case SymObject:
		bv, ok := b.(SymObject)
		if !ok {
			return nil, zerr.New(zerr.TypeMismatch, "symbolic: merge: object vs %T", b)
		}
		fields := make(map[string]SymValue, len(av.Fields))
		for name, fa := range av.Fields {
			fb, ok := bv.Fields[name]
			if !ok {
				return nil, zerr.New(zerr.TypeMismatch, "symbolic: merge: missing field %q on the other branch", name)
			}
			merged, err := merge(s, guard, fa, fb)
			if err != nil {
				return nil, err
			}
			fields[name] = merged
		}
		return SymObject{T: av.T, Fields: fields}, nil

	default:
		return nil, zerr.New(zerr.TypeMismatch, "symbolic: merge: unsupported value kind %T", a)
	}
}

func mergeLists(s solver.Solver, guard solver.Bool, a, b SymList) (SymList, error) {
	maxLen := len(a.Slots)
	if len(b.Slots) > maxLen {
		maxLen = len(b.Slots)
	}
	out := make([]ListSlot, maxLen)
	for i := 0; i < maxLen; i++ {
		aSlot, err := slotAt(s, a, i)
		if err != nil {
			return SymList{}, err
		}
		bSlot, err := slotAt(s, b, i)
		if err != nil {
			return SymList{}, err
		}
		present := s.IteBool(guard, aSlot.Present, bSlot.Present)
		item, err := merge(s, guard, aSlot.Item, bSlot.Item)
		if err != nil {
			return SymList{}, err
		}
		out[i] = ListSlot{Present: present, Item: item}
	}
	return SymList{Elem: a.Elem, Slots: out}, nil
}

// slotAt returns list's slot i, or a not-present padding slot wrapping
// a zero value of the list's element type if the list has fewer than
// i+1 slots.
func slotAt(s solver.Solver, list SymList, i int) (ListSlot, error) {
	if i < len(list.Slots) {
		return list.Slots[i], nil
	}
	z, err := zero(s, list.Elem)
	if err != nil {
		return ListSlot{}, err
	}
	return ListSlot{Present: s.False(), Item: z}, nil
}

// zero builds a placeholder symbolic value of type t used only to
// pad merges; its actual content is never observable because it is
// always paired with a Present=false slot.
func zero(s solver.Solver, t *typedesc.T) (SymValue, error) {
	switch t.Kind {
	case typedesc.KindBool:
		return SymBool{Term: s.False()}, nil
	case typedesc.KindList:
		return SymList{Elem: t.Elem, Slots: nil}, nil
	case typedesc.KindRecord, typedesc.KindOption:
		fields := make(map[string]SymValue, len(t.Fields))
		for _, f := range t.Fields {
			zf, err := zero(s, f.Type)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = zf
		}
		return SymObject{T: t, Fields: fields}, nil
	case typedesc.KindMap:
		return SymList{Elem: &typedesc.T{Kind: typedesc.KindRecord, Fields: []typedesc.Field{
			{Name: "key", Type: t.Key}, {Name: "value", Type: t.Elem},
		}}, Slots: nil}, nil
	default:
		term, err := s.CreateIntConst(t.Kind.Width(), 0)
		if err != nil {
			return nil, err
		}
		return SymInt{T: t, Term: term}, nil
	}
}

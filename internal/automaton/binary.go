package automaton

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/dekarrin/grampiler/internal/collect"
	"github.com/dekarrin/grampiler/internal/grammar"
)

// This file implements the binary encoding internal/cache persists compiled
// state tables with via rezi.EncBinary/DecBinary. The wire format is the
// same self-describing, length-prefixed scheme the teacher's own AST
// package hand-rolls for its binary serialization (internal/tunascript's
// encBinaryInt/encBinaryString/decBinary* helpers): every value is prefixed
// with enough to know how many bytes to consume next, so nested
// slices/maps round-trip without a schema.

func encInt(i int) []byte {
	enc := make([]byte, 8)
	return binary.AppendVarint(enc[:0:8], int64(i))
}

func decInt(data []byte) (int, int, error) {
	val, read := binary.Varint(data)
	if read <= 0 {
		return 0, 0, fmt.Errorf("automaton: corrupt int")
	}
	return int(val), read, nil
}

func encString(s string) []byte {
	enc := encInt(len(s))
	return append(enc, s...)
}

func decString(data []byte) (string, int, error) {
	n, read, err := decInt(data)
	if err != nil {
		return "", 0, err
	}
	data = data[read:]
	if len(data) < n {
		return "", 0, fmt.Errorf("automaton: unexpected end of data in string")
	}
	if !utf8.Valid(data[:n]) {
		return "", 0, fmt.Errorf("automaton: invalid UTF-8 in string")
	}
	return string(data[:n]), read + n, nil
}

func encBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

func decBool(data []byte) (bool, int, error) {
	if len(data) < 1 {
		return false, 0, fmt.Errorf("automaton: unexpected end of data in bool")
	}
	return data[0] != 0, 1, nil
}

func encStrings(ss []string) []byte {
	out := encInt(len(ss))
	for _, s := range ss {
		out = append(out, encString(s)...)
	}
	return out
}

func decStrings(data []byte) ([]string, int, error) {
	n, total, err := decInt(data)
	if err != nil {
		return nil, 0, err
	}
	data = data[total:]
	out := make([]string, n)
	for i := 0; i < n; i++ {
		s, read, err := decString(data)
		if err != nil {
			return nil, 0, err
		}
		out[i] = s
		data = data[read:]
		total += read
	}
	return out, total, nil
}

func encTokenRef(t grammar.TokenRef) []byte {
	out := encInt(int(t.Kind))
	out = append(out, encString(t.Value)...)
	return out
}

func decTokenRef(data []byte) (grammar.TokenRef, int, error) {
	kind, read, err := decInt(data)
	if err != nil {
		return grammar.TokenRef{}, 0, err
	}
	total := read
	data = data[read:]
	val, read, err := decString(data)
	if err != nil {
		return grammar.TokenRef{}, 0, err
	}
	total += read
	return grammar.TokenRef{Kind: grammar.Kind(kind), Value: val}, total, nil
}

func encTokenRefs(ts []grammar.TokenRef) []byte {
	out := encInt(len(ts))
	for _, t := range ts {
		out = append(out, encTokenRef(t)...)
	}
	return out
}

func decTokenRefs(data []byte) ([]grammar.TokenRef, int, error) {
	n, total, err := decInt(data)
	if err != nil {
		return nil, 0, err
	}
	data = data[total:]
	var out []grammar.TokenRef
	for i := 0; i < n; i++ {
		t, read, err := decTokenRef(data)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
		data = data[read:]
		total += read
	}
	return out, total, nil
}

// MarshalBinary implements encoding.BinaryMarshaler for Item.
func (it Item) MarshalBinary() ([]byte, error) {
	out := encString(it.NTName)
	out = append(out, encTokenRefs(it.Matched)...)
	out = append(out, encTokenRefs(it.WillMatch)...)
	out = append(out, encStrings(it.Lookahead.Sorted())...)
	return out, nil
}

func (it *Item) UnmarshalBinary(data []byte) error {
	name, read, err := decString(data)
	if err != nil {
		return err
	}
	it.NTName = name
	data = data[read:]

	matched, read, err := decTokenRefs(data)
	if err != nil {
		return err
	}
	it.Matched = matched
	data = data[read:]

	will, read, err := decTokenRefs(data)
	if err != nil {
		return err
	}
	it.WillMatch = will
	data = data[read:]

	la, _, err := decStrings(data)
	if err != nil {
		return err
	}
	it.Lookahead = collect.NewStringSet(la)
	return nil
}

func encAction(a Action) []byte {
	out := encInt(int(a.Kind))
	out = append(out, encInt(a.State)...)
	out = append(out, encTokenRefs(a.RHS)...)
	out = append(out, encString(a.LHS)...)
	return out
}

func decAction(data []byte) (Action, int, error) {
	kind, read, err := decInt(data)
	if err != nil {
		return Action{}, 0, err
	}
	total := read
	data = data[read:]

	state, read, err := decInt(data)
	if err != nil {
		return Action{}, 0, err
	}
	total += read
	data = data[read:]

	rhs, read, err := decTokenRefs(data)
	if err != nil {
		return Action{}, 0, err
	}
	total += read
	data = data[read:]

	lhs, read, err := decString(data)
	if err != nil {
		return Action{}, 0, err
	}
	total += read

	return Action{Kind: ActionKind(kind), State: state, RHS: rhs, LHS: lhs}, total, nil
}

func encActions(actions []Action) []byte {
	out := encInt(len(actions))
	for _, a := range actions {
		out = append(out, encAction(a)...)
	}
	return out
}

func decActions(data []byte) ([]Action, int, error) {
	n, total, err := decInt(data)
	if err != nil {
		return nil, 0, err
	}
	data = data[total:]
	var out []Action
	for i := 0; i < n; i++ {
		a, read, err := decAction(data)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
		data = data[read:]
		total += read
	}
	return out, total, nil
}

// MarshalBinary implements encoding.BinaryMarshaler for State.
func (s *State) MarshalBinary() ([]byte, error) {
	out := encInt(len(s.Items))
	for _, it := range s.Items {
		b, _ := it.MarshalBinary()
		out = append(out, encInt(len(b))...)
		out = append(out, b...)
	}

	termKeys := collect.OrderedKeys(s.Actions)
	out = append(out, encInt(len(termKeys))...)
	for _, t := range termKeys {
		out = append(out, encString(t)...)
		out = append(out, encActions(s.Actions[t])...)
	}

	gotoKeys := collect.OrderedKeys(s.Goto)
	out = append(out, encInt(len(gotoKeys))...)
	for _, nt := range gotoKeys {
		out = append(out, encString(nt)...)
		out = append(out, encInt(s.Goto[nt])...)
	}

	out = append(out, encActions(s.CommonActions)...)
	return out, nil
}

func (s *State) UnmarshalBinary(data []byte) error {
	n, read, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[read:]
	s.Items = make([]Item, 0, n)
	for i := 0; i < n; i++ {
		blobLen, r, err := decInt(data)
		if err != nil {
			return err
		}
		data = data[r:]
		var it Item
		if err := it.UnmarshalBinary(data[:blobLen]); err != nil {
			return err
		}
		data = data[blobLen:]
		s.Items = append(s.Items, it)
	}

	nTerms, read, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[read:]
	s.Actions = map[string][]Action{}
	for i := 0; i < nTerms; i++ {
		t, read, err := decString(data)
		if err != nil {
			return err
		}
		data = data[read:]
		acts, read, err := decActions(data)
		if err != nil {
			return err
		}
		data = data[read:]
		s.Actions[t] = acts
	}

	nGoto, read, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[read:]
	s.Goto = map[string]int{}
	for i := 0; i < nGoto; i++ {
		nt, read, err := decString(data)
		if err != nil {
			return err
		}
		data = data[read:]
		idx, read, err := decInt(data)
		if err != nil {
			return err
		}
		data = data[read:]
		s.Goto[nt] = idx
	}

	common, _, err := decActions(data)
	if err != nil {
		return err
	}
	s.CommonActions = common
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler for StateTable, the
// type internal/cache actually persists via rezi.EncBinary.
func (t *StateTable) MarshalBinary() ([]byte, error) {
	out := encBool(t.IsK0)
	out = append(out, encStrings(t.Terminals)...)
	out = append(out, encStrings(t.NonTerminals)...)

	out = append(out, encInt(len(t.States))...)
	for _, s := range t.States {
		b, _ := s.MarshalBinary()
		out = append(out, encInt(len(b))...)
		out = append(out, b...)
	}
	return out, nil
}

func (t *StateTable) UnmarshalBinary(data []byte) error {
	isK0, read, err := decBool(data)
	if err != nil {
		return err
	}
	t.IsK0 = isK0
	data = data[read:]

	terms, read, err := decStrings(data)
	if err != nil {
		return err
	}
	t.Terminals = terms
	data = data[read:]

	nts, read, err := decStrings(data)
	if err != nil {
		return err
	}
	t.NonTerminals = nts
	data = data[read:]

	n, read, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[read:]

	t.States = make([]*State, 0, n)
	for i := 0; i < n; i++ {
		blobLen, r, err := decInt(data)
		if err != nil {
			return err
		}
		data = data[r:]
		s := &State{}
		if err := s.UnmarshalBinary(data[:blobLen]); err != nil {
			return err
		}
		data = data[blobLen:]
		t.States = append(t.States, s)
	}
	return nil
}

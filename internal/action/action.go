// Package action implements the operations a user can run against the
// database and the business rules that decide whether they succeed.
//
// An Action is built from a name and its arguments with New, then run by
// an Executor. Execution yields a Success, or a *Warning when a rule
// blocks the operation. Some warnings can be resolved by asking the user
// and running a follow-up action; see package retry.
package action

import (
	"reis/internal/failure"
	"reis/internal/kvstorage"
)

// Kind identifies an action variant.
type Kind int

const (
	KindSet Kind = iota
	KindGet
	KindPut
	KindDel
	KindGetAll
	KindClear
)

type kindInfo struct {
	short, long string
	display     string
	hasKey      bool
	hasValue    bool
}

var kinds = [...]kindInfo{
	KindSet:    {"s", "set", "Set", true, true},
	KindGet:    {"g", "get", "Get", true, false},
	KindPut:    {"p", "put", "Put", true, true},
	KindDel:    {"d", "del", "Delete", true, false},
	KindGetAll: {"ga", "getall", "Get All", false, false},
	KindClear:  {"c", "clr", "Clear", false, false},
}

// Kinds returns every action kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindSet, KindGet, KindPut, KindDel, KindGetAll, KindClear}
}

// Lookup resolves a short or long action name.
func Lookup(name string) (Kind, bool) {
	for k, info := range kinds {
		if name == info.short || name == info.long {
			return Kind(k), true
		}
	}
	return 0, false
}

// Names returns the short and long spellings of the action.
func (k Kind) Names() (short, long string) {
	return kinds[k].short, kinds[k].long
}

// HasKey reports whether the action takes a key.
func (k Kind) HasKey() bool { return kinds[k].hasKey }

// HasValue reports whether the action takes a value.
func (k Kind) HasValue() bool { return kinds[k].hasValue }

// Arity is the number of positional arguments the action takes.
func (k Kind) Arity() int {
	n := 0
	if k.HasKey() {
		n++
	}
	if k.HasValue() {
		n++
	}
	return n
}

func (k Kind) String() string { return kinds[k].display }

// Action is one of Set, Get, Put, Del, GetAll or Clear.
type Action interface {
	Kind() Kind
	action()
}

// Set creates a new entry. It never overwrites an existing one.
type Set struct {
	Key   string
	Value string
	Flags Flags
}

// Get reads an entry.
type Get struct {
	Key   string
	Flags Flags
}

// Put updates an existing entry. It never creates a new one.
type Put struct {
	Key   string
	Value string
	Flags Flags
}

// Del removes an entry.
type Del struct {
	Key   string
	Flags Flags
}

// GetAll dumps every entry.
type GetAll struct {
	Flags Flags
}

// Clear removes every entry. It requires the Force flag.
type Clear struct {
	Flags Flags
}

func (Set) Kind() Kind    { return KindSet }
func (Get) Kind() Kind    { return KindGet }
func (Put) Kind() Kind    { return KindPut }
func (Del) Kind() Kind    { return KindDel }
func (GetAll) Kind() Kind { return KindGetAll }
func (Clear) Kind() Kind  { return KindClear }

func (Set) action()    {}
func (Get) action()    {}
func (Put) action()    {}
func (Del) action()    {}
func (GetAll) action() {}
func (Clear) action()  {}

// New builds the action called name. key and value may be nil when the
// action does not take them; arguments the action does not take are ignored.
func New(name string, key, value *string, flags Flags) (Action, error) {
	kind, ok := Lookup(name)
	if !ok {
		return nil, failure.UnknownAction(name)
	}

	var k, v string
	if kind.HasKey() {
		if key == nil {
			return nil, failure.InvalidArguments(kind.String())
		}
		if err := kvstorage.ValidateKey(*key); err != nil {
			return nil, failure.New(failure.InvalidInput, err)
		}
		k = *key
	}
	if kind.HasValue() {
		if value == nil {
			return nil, failure.InvalidArguments(kind.String())
		}
		if err := kvstorage.ValidateValue(*value); err != nil {
			return nil, failure.New(failure.InvalidInput, err)
		}
		v = *value
	}

	switch kind {
	case KindSet:
		return Set{Key: k, Value: v, Flags: flags}, nil
	case KindGet:
		return Get{Key: k, Flags: flags}, nil
	case KindPut:
		return Put{Key: k, Value: v, Flags: flags}, nil
	case KindDel:
		return Del{Key: k, Flags: flags}, nil
	case KindGetAll:
		return GetAll{Flags: flags}, nil
	default:
		return Clear{Flags: flags}, nil
	}
}

// FromArgs builds the action called name, taking the key and then the
// value from args positionally, as far as the action needs them.
func FromArgs(name string, args []string, flags Flags) (Action, error) {
	kind, ok := Lookup(name)
	if !ok {
		return nil, failure.UnknownAction(name)
	}
	var key, value *string
	if kind.HasKey() && len(args) > 0 {
		key, args = &args[0], args[1:]
	}
	if kind.HasValue() && len(args) > 0 {
		value = &args[0]
	}
	return New(name, key, value, flags)
}

// FromTokens builds the action called name from raw command-line tokens.
// The key and value are taken positionally first, even when they start
// with a dash; the remaining tokens are parsed as flags and anything
// unrecognised is dropped.
func FromTokens(name string, tokens []string) (Action, error) {
	kind, ok := Lookup(name)
	if !ok {
		return nil, failure.UnknownAction(name)
	}
	n := min(kind.Arity(), len(tokens))
	return FromArgs(name, tokens[:n], ParseFlags(tokens[n:]))
}

package action

import (
	"fmt"
	"strings"
)

// Success is the result of an action that completed.
type Success struct {
	Op Kind
	// Message is the line shown to the user.
	Message string
	// Value holds the value read by Get or the dump produced by GetAll.
	Value string
}

func getSuccess(value string) Success {
	return Success{Op: KindGet, Message: value, Value: value}
}

func getAllSuccess(dump string) Success {
	return Success{Op: KindGetAll, Message: strings.TrimSuffix(dump, "\n"), Value: dump}
}

func insertSuccess(key, value string) Success {
	return Success{Op: KindSet, Message: fmt.Sprintf("Successfully set the key %s with the value %s in the database!", key, value)}
}

func putSuccess(key, value string) Success {
	return Success{Op: KindPut, Message: fmt.Sprintf("Successfully updated the key %s with the value %s in the database!", key, value)}
}

func deleteSuccess(key string) Success {
	return Success{Op: KindDel, Message: fmt.Sprintf("Successfully deleted the entry for %s!", key)}
}

func clearSuccess() Success {
	return Success{Op: KindClear, Message: "Successfully cleared all database values!"}
}

// WarningKind identifies the business rule that blocked an action.
type WarningKind int

const (
	EmptyDatabase WarningKind = iota
	EntryAlreadyExists
	EntryDoesntExist
	RequiredArgumentsNotSpecified
)

func (k WarningKind) String() string {
	switch k {
	case EmptyDatabase:
		return "empty-database"
	case EntryAlreadyExists:
		return "entry-already-exists"
	case EntryDoesntExist:
		return "entry-doesnt-exist"
	case RequiredArgumentsNotSpecified:
		return "required-arguments-not-specified"
	default:
		return fmt.Sprintf("warning(%d)", int(k))
	}
}

// Warning reports an action that a business rule prevented. The database
// is left unchanged.
type Warning struct {
	Kind WarningKind
	Key  string

	// OldValue is the stored value for EntryAlreadyExists.
	OldValue string
	// NewValue is the value the action tried to write, if it had one.
	NewValue    string
	HasNewValue bool

	// Operation is the action that needs extra arguments, for
	// RequiredArgumentsNotSpecified.
	Operation Kind
	Missing   Flag
}

func (w *Warning) Error() string {
	switch w.Kind {
	case EmptyDatabase:
		return "The database is empty!"
	case EntryAlreadyExists:
		return fmt.Sprintf("The key %s already exists with the value %s!", w.Key, w.OldValue)
	case EntryDoesntExist:
		value := "<value>"
		if w.HasNewValue {
			value = w.NewValue
		}
		short, _ := KindSet.Names()
		return fmt.Sprintf("The entry for %s doesn't exist! Create it with: reis %s %s %s", w.Key, short, w.Key, value)
	case RequiredArgumentsNotSpecified:
		return fmt.Sprintf("The %s action requires the %s flag!", w.Operation, w.Missing)
	default:
		return w.Kind.String()
	}
}

func emptyDatabase() *Warning {
	return &Warning{Kind: EmptyDatabase}
}

func entryAlreadyExists(key, oldValue, newValue string) *Warning {
	return &Warning{Kind: EntryAlreadyExists, Key: key, OldValue: oldValue, NewValue: newValue, HasNewValue: true}
}

func entryDoesntExist(key string) *Warning {
	return &Warning{Kind: EntryDoesntExist, Key: key}
}

func entryDoesntExistWithValue(key, value string) *Warning {
	return &Warning{Kind: EntryDoesntExist, Key: key, NewValue: value, HasNewValue: true}
}

func clearWithoutForce() *Warning {
	return &Warning{Kind: RequiredArgumentsNotSpecified, Operation: KindClear, Missing: Force}
}

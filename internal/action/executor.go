package action

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Store is the part of the key-value store the executor needs.
type Store interface {
	Get(key string) (string, bool)
	Insert(key, value string)
	Delete(key string) (string, bool)
	Exists(key string) bool
	IsEmpty() bool
	GetAll() (string, bool)
	Clear()
}

// Copier copies text to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Executor runs actions against a store.
type Executor struct {
	Store Store
	// Clipboard is used by Get with the Clipboard flag. May be nil.
	Clipboard Copier
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Execute runs a. A blocked action returns a *Warning and leaves the
// store untouched.
func (e *Executor) Execute(a Action) (Success, error) {
	switch a := a.(type) {
	case Set:
		if old, ok := e.Store.Get(a.Key); ok {
			return Success{}, entryAlreadyExists(a.Key, old, a.Value)
		}
		e.Store.Insert(a.Key, a.Value)
		return insertSuccess(a.Key, a.Value), nil

	case Get:
		value, ok := e.Store.Get(a.Key)
		if !ok {
			return Success{}, entryDoesntExist(a.Key)
		}
		if a.Flags.Has(Clipboard) {
			e.copy(value)
		}
		return getSuccess(value), nil

	case Put:
		if !e.Store.Exists(a.Key) {
			return Success{}, entryDoesntExistWithValue(a.Key, a.Value)
		}
		e.Store.Insert(a.Key, a.Value)
		return putSuccess(a.Key, a.Value), nil

	case Del:
		if _, ok := e.Store.Delete(a.Key); !ok {
			return Success{}, entryDoesntExist(a.Key)
		}
		return deleteSuccess(a.Key), nil

	case GetAll:
		dump, ok := e.Store.GetAll()
		if !ok {
			return Success{}, emptyDatabase()
		}
		return getAllSuccess(dump), nil

	case Clear:
		// Emptiness wins over a missing Force flag.
		if e.Store.IsEmpty() {
			return Success{}, emptyDatabase()
		}
		if !a.Flags.Has(Force) {
			return Success{}, clearWithoutForce()
		}
		e.Store.Clear()
		return clearSuccess(), nil

	default:
		panic(fmt.Sprintf("action: unhandled action type %T", a))
	}
}

// copy never fails the action; errors are only logged.
func (e *Executor) copy(value string) {
	if e.Clipboard == nil {
		return
	}
	if err := e.Clipboard.Copy(value); err != nil {
		log := zerolog.Nop()
		if e.Logger != nil {
			log = *e.Logger
		}
		log.Debug().Err(err).Msg("copying value to clipboard")
	}
}

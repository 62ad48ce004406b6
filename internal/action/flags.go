package action

import "strings"

// Flag is an optional modifier attached to an action.
type Flag uint8

const (
	Force Flag = iota
	Help
	Clipboard
	Description
)

// FlagSpec describes how a flag is spelled on the command line.
type FlagSpec struct {
	Flag      Flag
	Name      string // long form, without dashes
	Shorthand string // single letter, without dash
	Usage     string
}

// FlagSpecs lists every recognised flag.
var FlagSpecs = []FlagSpec{
	{Force, "force", "f", "Skip the confirmation for destructive actions"},
	{Help, "help", "h", "Show help for the action"},
	{Clipboard, "clipboard", "c", "Copy the value to the clipboard"},
	{Description, "description", "d", "Reserved for entry descriptions"},
}

func (f Flag) String() string {
	for _, spec := range FlagSpecs {
		if spec.Flag == f {
			return "-" + spec.Shorthand + " (" + strings.ToUpper(spec.Name[:1]) + spec.Name[1:] + ")"
		}
	}
	return "unknown"
}

// ParseFlag maps a token such as "-f" or "--force" to its Flag.
func ParseFlag(token string) (Flag, bool) {
	for _, spec := range FlagSpecs {
		if token == "-"+spec.Shorthand || token == "--"+spec.Name {
			return spec.Flag, true
		}
	}
	return 0, false
}

// ParseFlags converts tokens into a flag set. Unrecognised tokens are dropped.
func ParseFlags(tokens []string) Flags {
	var fs Flags
	for _, tok := range tokens {
		if f, ok := ParseFlag(tok); ok {
			fs = fs.With(f)
		}
	}
	return fs
}

// Flags is a set of flags.
type Flags uint8

// NewFlags returns a set holding the given flags.
func NewFlags(flags ...Flag) Flags {
	var fs Flags
	for _, f := range flags {
		fs = fs.With(f)
	}
	return fs
}

// With returns a copy of fs that also contains f.
func (fs Flags) With(f Flag) Flags {
	return fs | 1<<f
}

// Has reports whether f is in the set.
func (fs Flags) Has(f Flag) bool {
	return fs&(1<<f) != 0
}

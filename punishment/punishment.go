package punishment

import (
	"fmt"
	"strings"
)

// Punishment specifies a consequence that is carried out once a violation level is reached.
type Punishment struct {
	punishment
}

type punishment string

// None will do nothing.
func None() Punishment {
	return Punishment{"none"}
}

// Cancel will revert the move that caused the violation.
func Cancel() Punishment {
	return Punishment{"cancel"}
}

// Log will write a warning describing the violation.
func Log() Punishment {
	return Punishment{"log"}
}

// Kick will remove the entity from the server.
func Kick() Punishment {
	return Punishment{"kick"}
}

// Ban will remove the entity from the server and keep it from joining again.
func Ban() Punishment {
	return Punishment{"ban"}
}

// String ...
func (p Punishment) String() string {
	if p.punishment == "" {
		return "none"
	}
	return string(p.punishment)
}

// Removes returns true if the punishment removes the entity from the server.
func (p Punishment) Removes() bool {
	return p == Kick() || p == Ban()
}

// Parse parses a punishment from its name.
func Parse(name string) (Punishment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None(), nil
	case "cancel":
		return Cancel(), nil
	case "log":
		return Log(), nil
	case "kick":
		return Kick(), nil
	case "ban":
		return Ban(), nil
	}
	return Punishment{}, fmt.Errorf("unknown punishment %q", name)
}

// ParseAll parses a list of punishment names.
func ParseAll(names []string) ([]Punishment, error) {
	out := make([]Punishment, 0, len(names))
	for _, n := range names {
		p, err := Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

package script

import (
	"fmt"

	"github.com/traefik/yaegi/interp"
)

// Validate compiles the script with the yaegi interpreter without running it.
// A nil return means the script is syntactically valid; anything else is the
// compile error to surface to the caller.
func Validate(src string) error {
	i := interp.New(interp.Options{})
	if _, err := i.Compile(src); err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	return nil
}

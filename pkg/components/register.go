package components

import (
	"fmt"

	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/style"
)

// Tags of the library elements.
const (
	FlexTag    = "m-flex"
	SpinnerTag = "m-spinner"
	ButtonTag  = "m-button"
)

// Register defines every library element in reg. styles receives the
// synthesized rules and adopts the static sheets; nil uses style.Shared().
func Register(reg *dom.Registry, styles *style.Registry) error {
	if styles == nil {
		styles = style.Shared()
	}
	defines := []struct {
		tag    string
		define func(*dom.Registry, *style.Registry) error
	}{
		{FlexTag, DefineFlex},
		{SpinnerTag, DefineSpinner},
		{ButtonTag, DefineButton},
	}
	for _, d := range defines {
		if reg.IsDefined(d.tag) {
			continue
		}
		if err := d.define(reg, styles); err != nil {
			return fmt.Errorf("components: define %s: %w", d.tag, err)
		}
	}
	return nil
}

package homebrew

import (
	"fmt"
)

var (
	ErrAlreadyRun          = fmt.Errorf("application has already been run")
	ErrMissingCollaborator = fmt.Errorf("application requires a process context, a console log and a clock")
)

package homebrew

import (
	"context"
)

// ContextKey is a generic structure that can be used to attach metadata to the application context.
type ContextKey string

func (c ContextKey) String() string {
	return "homebrew." + string(c)
}

// Contextual represents an object that caries a context accessible via a Context() method. The Application's context
// is cancelled once it reaches StateTerminated.
type Contextual interface {
	Context() context.Context
}

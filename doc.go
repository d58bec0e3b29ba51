// Package homebrew drives the lifecycle of a minimal console homebrew program. An Application acquires a process
// context and an on-screen log console, greets the user, redraws the console while the process is running and, once
// the platform asks it to exit, says good bye and releases both collaborators in a fixed order.
//
// The collaborators are interfaces so the same driver runs against the platform bindings, the hosted implementations
// in the console, proc and ostime packages, or test doubles.
package homebrew

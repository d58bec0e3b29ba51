// Package proc is the hosted process context. On the console the platform clears the running flag when the user
// leaves through the home menu; here SIGINT, SIGTERM or an explicit RequestExit play that role.
package proc

// Package console implements the on-screen log console for hosted builds. It keeps a fixed number of lines, scrolls
// the oldest line off when full, and repaints the whole buffer on every Draw, the way the platform's framebuffer
// console does. Output goes to any io.Writer; colors follow the writer's terminal profile unless disabled.
package console

// Package execx runs external executables for gguser.
//
// Commands are always executed directly with an argument vector; nothing is
// ever passed through a shell, so profile values containing quotes or other
// shell metacharacters reach the executable verbatim. At debug level every
// command is echoed to the logger before it runs.
package execx

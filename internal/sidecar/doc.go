// Package sidecar supervises the bundled OpenDBM API server.
//
// A Supervisor launches <resource dir>/bin/server (server.exe on Windows) once
// at application startup with PORT=8880 and ENV=desktop, keeps the resulting
// Handle in a mutex-guarded slot, and kills it when the primary window is
// destroyed. A failed launch is not fatal: the shell keeps running and the
// developer is expected to start the server by hand.
//
// Terminate takes the handle out of the slot before killing it, so calling it
// more than once is harmless. The slot is never refilled.
package sidecar

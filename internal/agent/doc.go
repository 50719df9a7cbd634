// Package agent launches AI coding assistant CLIs inside worktree
// directories.
//
// Each agent is a capability behind the Agent interface: given a working
// directory, optional system prompt content, and forwarded arguments, it
// runs the assistant with the terminal attached and blocks until the
// user exits it. Built-in agents cover claude and gemini; additional
// commands can be registered through the agents.jsonc definition file
// (JSONC, so the file may carry comments).
//
// The agent process inherits stdin/stdout/stderr. Its exit status is
// forwarded to the caller through a CLIError, so `arbor create` exits
// with whatever code the agent exited with.
package agent

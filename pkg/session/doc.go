/*
Package session implements per-caller session handling.

Manager serializes access to a caller's session (local mutex plus an optional
distributed lock) and persists it through a ports.SessionStore. Dispatcher
builds the ExecutionInfo for each inbound message and runs it through the
command engine inside the sender's session.
*/
package session

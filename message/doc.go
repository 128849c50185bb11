// Package message defines the forward message model: the unit of data the
// server sends to a connected browser client.
//
// A ForwardMsg carries a single Delta, identified by Delta.ID, whose
// NewElement holds at most one concrete element (text, data frame, or
// exception). Messages serialize to JSON via Marshal and round-trip
// through UnmarshalForwardMsg.
//
// MarshalException converts an arbitrary Go error into a structured
// ExceptionElement (type name, message text, stack when available) so
// server-side failures can be rendered in the client instead of silently
// dropping content.
package message

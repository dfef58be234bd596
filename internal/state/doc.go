// Package state holds the in-memory mirror of server collections.
//
// A Collection is only ever changed after the server confirmed the change.
// Fetches are tagged with a Token when they are issued; a response is applied
// only if no newer fetch was issued in the meantime, so the last-issued
// request wins regardless of the order responses arrive in. Once a
// collection is closed every late completion is dropped.
package state

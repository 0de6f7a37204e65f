// Package events provides types and interfaces for reporting what happens
// during a drill session.
//
// A session emits events without knowing which handlers will process them.
// The primary components are:
// - Event: Something that happened to a prompt or to the session
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events

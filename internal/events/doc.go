// Package events provides progress notifications for batch runs. The
// dispatcher emits an event for every finished attempt and every terminal
// outcome; handlers observe them for logging without taking part in the
// run itself.
package events

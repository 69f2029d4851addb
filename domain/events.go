// Package domain provides canonical type definitions for the PDF table extractor.
package domain

import "time"

// ObjectEvent is a storage notification normalized from the trigger payload.
// The handler builds one ObjectEvent per notification record before deciding
// whether the object should be converted.
type ObjectEvent struct {
	// EventName is the notification type (e.g., "ObjectCreated:Put").
	EventName string `json:"event_name,omitempty"`

	// EventTime is when the storage service emitted the notification.
	EventTime time.Time `json:"event_time,omitempty"`

	// Object identifies the object, with the key already URL-decoded.
	Object ObjectRef `json:"object"`

	// Size is the object size reported by the notification, if any.
	Size int64 `json:"size,omitempty"`
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the identifier generators used across the platform.

Two flavours are exposed:

  - New: time-ordered UUIDv7 values for records that are created many times
    (posts). They sort naturally by creation time.
  - FromName: name-based UUIDv5 values for records whose identity is already a
    natural key (accounts). The same name always maps to the same ID, which lets
    a document store reject a duplicate insert on its own.
*/
package uuid

import "github.com/google/uuid"

// namespace scopes every name-based ID generated by this service.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://weavepost.dev/ids"))

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// FromName returns the deterministic UUIDv5 for kind/name.
//
// kind keeps identical names in different collections apart.
func FromName(kind, name string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+name)).String()
}

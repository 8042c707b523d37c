package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. Users, devices, cards and addresses all
// key on these: they sort by creation time and spread evenly as DynamoDB
// partition keys, and the same value doubles as the photo object key suffix.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	threadsafe "github.com/yeungkaho/ThreadSafe"
)

// WidePayload is a copy-heavy value for measuring lock-held copy cost.
type WidePayload struct {
	ID     int64
	Name   string
	Labels [8]uint64
	Notes  string
}

// MakeWide builds a deterministic WidePayload for iteration i.
func MakeWide(i int) WidePayload {
	p := WidePayload{
		ID:    int64(i),
		Name:  fmt.Sprintf("payload-%d", i),
		Notes: "synthetic benchmark payload",
	}
	for j := range p.Labels {
		p.Labels[j] = uint64(i + j)
	}
	return p
}

// MakeTags builds a slice of n distinct tag strings.
func MakeTags(n int) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = fmt.Sprintf("tag-%d", i)
	}
	return tags
}

// Document is a container-bearing aggregate for codec benchmarks.
type Document struct {
	Name threadsafe.Value[string]      `json:"name" yaml:"name"`
	Tags threadsafe.Value[[]string]    `json:"tags,omitzero" yaml:"tags,omitempty"`
	Meta threadsafe.Value[WidePayload] `json:"meta,omitzero" yaml:"meta,omitempty"`
}

// GenDocument builds a fully populated Document with n tags.
func GenDocument(n int) Document {
	return Document{
		Name: threadsafe.New("bench"),
		Tags: threadsafe.New(MakeTags(n)),
		Meta: threadsafe.New(MakeWide(n)),
	}
}

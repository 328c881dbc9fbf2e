package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
)

var shellCounter int64

// NewTestShellID generates a process-local unique shell instance ID for
// tests. Pass in t.Name() so log lines of an instance trace back to its
// test.
func NewTestShellID(prefix, tname string) string {
	id := atomic.AddInt64(&shellCounter, 1)
	return fmt.Sprintf("%s-%s-%d", prefix, strings.NewReplacer("/", "-_-", " ", "_").Replace(tname), id)
}

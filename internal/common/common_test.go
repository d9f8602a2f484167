package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendUnique(t *testing.T) {
	assert.Equal(t, []int{1}, AppendUnique([]int(nil), 1))
	assert.Equal(t, []string{"a", "b"}, AppendUnique([]string{"a", "b"}, "a"))
	assert.Equal(t, []string{"a", "b", "c"}, AppendUnique([]string{"a", "b"}, "c"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "ping_vnfd_cp0", Sanitize("ping-vnfd/cp0"))
	assert.Equal(t, "already_ok_1", Sanitize("already_ok_1"))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'a', 'b'", Quote([]string{"a", "b"}))
	assert.Equal(t, "", Quote(nil))
}

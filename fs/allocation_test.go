package fs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanfgarcia/simple-file-system/fs"
	"github.com/juanfgarcia/simple-file-system/simtest"
)

// Exhausting every inode slot and then freeing one exercises the bitmap
// invariant from the outside: the allocator must never hand out a slot
// still marked live, and a freed slot must become available again.
func TestInodeAllocationExhaustionAndReuse(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	for i := 0; i < fs.MaxFileNum; i++ {
		name := fmt.Sprintf("file%02d.bin", i)
		require.Equal(t, 0, sys.CreateFile(name), "create %s should succeed", name)
	}

	assert.Equal(t, -2, sys.CreateFile("overflow.bin"), "no free inode slots should remain")

	require.Equal(t, 0, sys.RemoveFile("file00.bin"))
	assert.Equal(t, 0, sys.CreateFile("overflow.bin"), "a freed slot must be reusable")
}

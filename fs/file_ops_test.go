package fs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanfgarcia/simple-file-system/fs"
	"github.com/juanfgarcia/simple-file-system/simtest"
)

func TestCreateFileRejectsDuplicateName(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("notes.txt"))
	assert.Equal(t, -1, sys.CreateFile("notes.txt"))
}

func TestCreateFileRejectsOversizedName(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	tooLong := strings.Repeat("a", fs.MaxNameLength+1)
	assert.Equal(t, -2, sys.CreateFile(tooLong))
}

func TestOpenFileReturnsDescriptorEqualToInodeID(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("a.bin"))
	require.Equal(t, 0, sys.CreateFile("b.bin"))

	fdA := sys.OpenFile("a.bin")
	fdB := sys.OpenFile("b.bin")
	require.GreaterOrEqual(t, fdA, 0)
	require.GreaterOrEqual(t, fdB, 0)
	assert.NotEqual(t, fdA, fdB)
	// On a fresh volume the two files occupy inode slots 0 and 1.
	assert.Equal(t, 0, fdA)
	assert.Equal(t, 1, fdB)

	assert.Equal(t, -2, sys.OpenFile("a.bin"), "opening an already-open file must fail")
	assert.Equal(t, -1, sys.OpenFile("missing.bin"))
}

func TestCloseFileRejectsDoubleClose(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("a.bin"))
	fd := sys.OpenFile("a.bin")
	require.GreaterOrEqual(t, fd, 0)

	require.Equal(t, 0, sys.CloseFile(fd))
	assert.Equal(t, -1, sys.CloseFile(fd), "closing an already-closed descriptor must fail")
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("round.bin"))
	fd := sys.OpenFile("round.bin")
	require.GreaterOrEqual(t, fd, 0)

	payload := []byte("the quick brown fox jumps over the lazy dog")
	written := sys.WriteFile(fd, payload, len(payload))
	require.Equal(t, len(payload), written)

	require.Equal(t, 0, sys.LseekFile(fd, 0, fs.SeekBegin))

	buf := make([]byte, len(payload))
	read := sys.ReadFile(fd, buf, len(buf))
	require.Equal(t, len(payload), read)
	assert.Equal(t, payload, buf)

	// A further read at end of file reports 0 bytes, not an error.
	assert.Equal(t, 0, sys.ReadFile(fd, buf, len(buf)))
}

func TestWriteClampsToMaxFileSize(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("big.bin"))
	fd := sys.OpenFile("big.bin")
	require.GreaterOrEqual(t, fd, 0)

	oversized := make([]byte, fs.MaxFileSize*2)
	written := sys.WriteFile(fd, oversized, len(oversized))
	assert.Equal(t, fs.MaxFileSize, written)

	// Once the file is at capacity, further writes return 0, not an error.
	assert.Equal(t, 0, sys.WriteFile(fd, oversized, len(oversized)))
}

func TestWriteSpanningMultipleBlocks(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("spans.bin"))
	fd := sys.OpenFile("spans.bin")
	require.GreaterOrEqual(t, fd, 0)

	payload := make([]byte, 3*fs.BlockSize)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	written := sys.WriteFile(fd, payload, len(payload))
	require.Equal(t, len(payload), written)

	require.Equal(t, 0, sys.LseekFile(fd, 0, fs.SeekBegin))
	buf := make([]byte, len(payload))
	read := sys.ReadFile(fd, buf, len(buf))
	require.Equal(t, len(payload), read)
	assert.Equal(t, payload, buf)
}

func TestRemoveFileFreesInodeAndBlocks(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("throwaway.bin"))
	fd := sys.OpenFile("throwaway.bin")
	require.GreaterOrEqual(t, fd, 0)
	require.Equal(t, 0, sys.CloseFile(fd))

	require.Equal(t, 0, sys.RemoveFile("throwaway.bin"))
	assert.Equal(t, -1, sys.RemoveFile("throwaway.bin"), "removing twice must fail")
	assert.Equal(t, -1, sys.OpenFile("throwaway.bin"), "name must no longer resolve")

	// The freed inode slot must be reusable by a fresh create.
	require.Equal(t, 0, sys.CreateFile("replacement.bin"))
}

func TestCreateLnAndResolution(t *testing.T) {
	sys, _ := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("source.bin"))
	srcFD := sys.OpenFile("source.bin")
	require.GreaterOrEqual(t, srcFD, 0)
	payload := []byte("linked contents")
	require.Equal(t, len(payload), sys.WriteFile(srcFD, payload, len(payload)))
	require.Equal(t, 0, sys.CloseFile(srcFD))

	require.Equal(t, 0, sys.CreateLn("source.bin", "alias.bin"))
	assert.Equal(t, -2, sys.CreateLn("source.bin", "alias.bin"), "linking an existing name must fail")
	assert.Equal(t, -1, sys.CreateLn("does-not-exist.bin", "other.bin"))
	assert.Equal(t, -1, sys.CreateLn("alias.bin", "chained.bin"), "linking through a link must be rejected")

	fd := sys.OpenFile("alias.bin")
	require.GreaterOrEqual(t, fd, 0)
	buf := make([]byte, len(payload))
	require.Equal(t, len(payload), sys.ReadFile(fd, buf, len(buf)))
	assert.Equal(t, payload, buf)
	require.Equal(t, 0, sys.CloseFile(fd))

	require.Equal(t, 0, sys.RemoveLn("alias.bin"))
	assert.Equal(t, -1, sys.RemoveLn("alias.bin"))
}

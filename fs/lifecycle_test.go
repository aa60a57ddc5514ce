package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanfgarcia/simple-file-system/fs"
	"github.com/juanfgarcia/simple-file-system/simtest"
)

func TestMkFSRejectsDeviceSizeOutsideRange(t *testing.T) {
	dev := simtest.NewDevice(simtest.DefaultDeviceSize)
	sys := fs.New(dev)

	assert.Equal(t, -1, sys.MkFS(fs.MinDiskSize-1))
	assert.Equal(t, -1, sys.MkFS(fs.MaxDiskSize+1))
	assert.Equal(t, 0, sys.MkFS(fs.MinDiskSize))
}

func TestMountIsNotReentrant(t *testing.T) {
	sys, _ := simtest.NewFormatted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.Mount())
	assert.Equal(t, -1, sys.Mount(), "mounting an already-mounted file system must fail")
}

func TestUnmountRequiresMount(t *testing.T) {
	sys, _ := simtest.NewFormatted(t, simtest.DefaultDeviceSize)
	assert.Equal(t, -1, sys.Unmount(), "unmounting before mounting must fail")

	require.Equal(t, 0, sys.Mount())
	assert.Equal(t, 0, sys.Unmount())
	assert.Equal(t, -1, sys.Unmount(), "unmounting twice must fail")
}

func TestPersistenceAcrossMountCycle(t *testing.T) {
	sys, dev := simtest.NewMounted(t, simtest.DefaultDeviceSize)

	require.Equal(t, 0, sys.CreateFile("journal.txt"))
	fd := sys.OpenFile("journal.txt")
	require.GreaterOrEqual(t, fd, 0)

	payload := []byte("persisted across unmount")
	require.Equal(t, len(payload), sys.WriteFile(fd, payload, len(payload)))
	require.Equal(t, 0, sys.CloseFile(fd))
	require.Equal(t, 0, sys.Unmount())

	reopened := fs.New(dev)
	require.Equal(t, 0, reopened.Mount())

	fd2 := reopened.OpenFile("journal.txt")
	require.GreaterOrEqual(t, fd2, 0)

	buf := make([]byte, len(payload))
	n := reopened.ReadFile(fd2, buf, len(buf))
	require.Equal(t, len(payload), n)
	assert.Equal(t, payload, buf)
}

package fs

import "github.com/juanfgarcia/simple-file-system/device"

// FileSystem is the single explicit object carrying every piece of mount
// state: the mounted flag, the in-memory superblock, the inode table, and
// the file descriptor table. Spec.md section 9 calls out the source's
// reliance on hidden process-wide globals for this state; here it is all
// just fields of one struct passed by receiver, with one FileSystem per
// mounted volume.
type FileSystem struct {
	device  *device.BlockDevice
	mounted bool

	sb     superblock
	inodes [MaxFileNum]inode
	descs  [MaxFileNum]descriptor
}

// New creates a FileSystem over dev. Call MkFS and Mount before using it.
func New(dev *device.BlockDevice) *FileSystem {
	return &FileSystem{device: dev}
}

// MkFS formats dev with a fresh, empty file system. Returns 0 on success,
// -1 if deviceSize is outside [MinDiskSize, MaxDiskSize]. Spec.md section
// 4.4.
func (fsys *FileSystem) MkFS(deviceSize int64) int {
	if deviceSize < MinDiskSize || deviceSize > MaxDiskSize {
		return -1
	}

	fsys.sb = newSuperblock(deviceSize)
	fsys.inodes = [MaxFileNum]inode{}
	fsys.descs = [MaxFileNum]descriptor{}

	zero := make([]byte, BlockSize)
	for i := 0; i < int(fsys.sb.blockNum); i++ {
		if err := fsys.device.WriteBlock(FirstDataBlock+i, zero); err != nil {
			return -1
		}
	}

	if err := fsys.flushMetadata(); err != nil {
		return -1
	}
	return 0
}

// Mount loads the superblock and inode table into memory. Returns 0 on
// success, -1 if already mounted or the metadata can't be read. Spec.md
// section 4.4.
func (fsys *FileSystem) Mount() int {
	if fsys.mounted {
		return -1
	}
	if err := fsys.loadMetadata(); err != nil {
		return -1
	}
	fsys.mounted = true
	return 0
}

// Unmount flushes the superblock and inode table to disk. Returns 0 on
// success, -1 if not mounted or the flush fails. Spec.md section 4.4.
func (fsys *FileSystem) Unmount() int {
	if !fsys.mounted {
		return -1
	}
	if err := fsys.flushMetadata(); err != nil {
		return -1
	}
	fsys.mounted = false
	return 0
}

// CreateFile creates a new, empty file. Returns 0 on success, -1 if name
// already exists, -2 on any other failure (not mounted, no space, name too
// long). Spec.md section 4.4.
//
// The ordering below — allocating the inode and first block *before*
// validating the name length — matches spec.md section 4.4's documented
// steps exactly, including its not freeing those allocations when the
// length check fails afterward. That is the source's own documented
// behavior, not a bug introduced here.
func (fsys *FileSystem) CreateFile(name string) int {
	if !fsys.mounted {
		return -2
	}
	if fsys.nameToInode(name) >= 0 {
		return -1
	}

	inodeID, err := fsys.ialloc()
	if err != nil {
		return -2
	}

	blockID, err := fsys.balloc()
	if err != nil {
		fsys.ifree(inodeID)
		return -2
	}

	if len(name) > MaxNameLength {
		return -2
	}

	fsys.inodes[inodeID] = newFileInode(name, int32(blockID))
	fsys.descs[inodeID] = descriptor{state: stateClosed, offset: 0}
	fsys.sb.numInodes++
	return 0
}

// RemoveFile deletes an existing file, freeing its inode and data blocks.
// Returns 0 on success, -1 if the name doesn't exist, -2 if it names a
// link or a block/inode free fails. Spec.md section 4.4.
func (fsys *FileSystem) RemoveFile(name string) int {
	if !fsys.mounted {
		return -2
	}
	id := fsys.nameToInode(name)
	if id < 0 {
		return -1
	}

	in := &fsys.inodes[id]
	if in.isLink() {
		return -2
	}

	for i := 0; i < DirectBlockCount; i++ {
		if in.direct[i] != noBlock {
			if err := fsys.bfree(int(in.direct[i])); err != nil {
				return -2
			}
		}
	}

	if err := fsys.ifree(id); err != nil {
		return -2
	}
	fsys.descs[id] = descriptor{}
	fsys.sb.numInodes--
	return 0
}

// OpenFile opens an existing file (or link, recursing one hop to its
// source) for reading and writing, resetting its seek offset to 0. Returns
// the file descriptor (equal to the inode id) on success, -1 if the name
// doesn't exist, -2 if already open or the link's source can't be opened.
// Spec.md section 4.4.
func (fsys *FileSystem) OpenFile(name string) int {
	if !fsys.mounted {
		return -2
	}
	id := fsys.nameToInode(name)
	if id < 0 {
		return -1
	}
	if fsys.descs[id].state == stateOpen {
		return -2
	}

	in := &fsys.inodes[id]
	if in.isLink() {
		sourceID := fsys.nameToInode(in.linkSource)
		if sourceID < 0 {
			return -2
		}
		if fsys.OpenFile(in.linkSource) < 0 {
			return -2
		}
	}

	fsys.descs[id] = descriptor{state: stateOpen, offset: 0, integrity: false}
	return id
}

// CloseFile closes an open file descriptor (or link, recursing one hop to
// its source). Returns 0 on success, -1 if not mounted, fd is already
// closed, or fd holds an open integrity session (use CloseFileIntegrity).
// Spec.md section 4.4.
func (fsys *FileSystem) CloseFile(fd int) int {
	if !fsys.mounted {
		return -1
	}
	if fd < 0 || fd >= MaxFileNum {
		return -1
	}
	if fsys.descs[fd].integrity {
		return -1
	}
	if fsys.descs[fd].state == stateClosed {
		return -1
	}

	in := &fsys.inodes[fd]
	if in.isLink() {
		sourceID := fsys.nameToInode(in.linkSource)
		if sourceID < 0 {
			return -1
		}
		fsys.CloseFile(sourceID)
	}

	fsys.descs[fd].state = stateClosed
	return 0
}

// ReadFile reads up to n bytes from fd's current offset into buf, advancing
// the offset. Returns the number of bytes read (0 at end of file), -1 on
// any precondition failure. Spec.md section 4.4.
func (fsys *FileSystem) ReadFile(fd int, buf []byte, n int) int {
	if !fsys.mounted {
		return -1
	}
	if fd < 0 || fd >= MaxFileNum {
		return -1
	}
	if !fsys.sb.inodeMap.Get(fd) {
		return -1
	}
	if n < 0 {
		return -1
	}
	if fsys.descs[fd].state != stateOpen {
		return -1
	}
	if n == 0 {
		return 0
	}

	in := &fsys.inodes[fd]
	if in.isLink() {
		sourceID := fsys.nameToInode(in.linkSource)
		if sourceID < 0 {
			return -1
		}
		return fsys.ReadFile(sourceID, buf, n)
	}

	pos := fsys.descs[fd].offset
	size := in.size
	if pos >= size {
		return 0
	}
	if n > size-pos {
		n = size - pos
	}

	readTotal := 0
	position := pos
	block := make([]byte, BlockSize)
	for readTotal < n {
		blockID, err := fsys.blockMap(fd, position)
		if err != nil {
			return -1
		}
		if err := fsys.device.ReadBlock(FirstDataBlock+blockID, block); err != nil {
			return -1
		}

		offsetInBlock := position % BlockSize
		toRead := BlockSize - offsetInBlock
		if toRead > n-readTotal {
			toRead = n - readTotal
		}
		copy(buf[readTotal:readTotal+toRead], block[offsetInBlock:offsetInBlock+toRead])

		readTotal += toRead
		position += toRead
	}

	fsys.descs[fd].offset += n
	return n
}

// WriteFile writes up to n bytes from buf at fd's current offset,
// allocating new blocks as needed and advancing the offset and file size.
// Returns the number of bytes written, -1 on any precondition failure.
// Spec.md section 4.4.
func (fsys *FileSystem) WriteFile(fd int, buf []byte, n int) int {
	if !fsys.mounted {
		return -1
	}
	if fd < 0 || fd >= MaxFileNum {
		return -1
	}
	if !fsys.sb.inodeMap.Get(fd) {
		return -1
	}
	if n < 0 {
		return -1
	}

	pos := fsys.descs[fd].offset
	if n == 0 || pos == MaxFileSize {
		return 0
	}
	if fsys.descs[fd].state != stateOpen {
		return -1
	}

	in := &fsys.inodes[fd]
	if in.isLink() {
		sourceID := fsys.nameToInode(in.linkSource)
		if sourceID < 0 {
			return -1
		}
		return fsys.WriteFile(sourceID, buf, n)
	}

	if n > MaxFileSize-pos {
		n = MaxFileSize - pos
	}

	written := 0
	position := pos
	block := make([]byte, BlockSize)
	for written < n {
		blockID, err := fsys.blockMap(fd, position)
		if err != nil {
			return -1
		}
		if err := fsys.device.ReadBlock(FirstDataBlock+blockID, block); err != nil {
			return -1
		}

		offsetInBlock := position % BlockSize
		toWrite := BlockSize - offsetInBlock
		if toWrite > n-written {
			toWrite = n - written
		}
		copy(block[offsetInBlock:offsetInBlock+toWrite], buf[written:written+toWrite])

		if err := fsys.device.WriteBlock(FirstDataBlock+blockID, block); err != nil {
			return -1
		}

		written += toWrite
		position += toWrite
	}

	fsys.descs[fd].offset += n
	in.size += n
	return n
}

// LseekFile repositions fd's seek offset (or, for a link, its source's).
// Returns 0 on success, -1 on any precondition failure or if the resulting
// offset would fall outside [0, MaxFileSize]. Spec.md section 4.4.
func (fsys *FileSystem) LseekFile(fd int, offset int64, whence int) int {
	if !fsys.mounted {
		return -1
	}
	if fd < 0 || fd >= MaxFileNum {
		return -1
	}
	if !fsys.sb.inodeMap.Get(fd) {
		return -1
	}
	if fsys.descs[fd].state != stateOpen {
		return -1
	}

	in := &fsys.inodes[fd]
	if in.isLink() {
		sourceID := fsys.nameToInode(in.linkSource)
		if sourceID < 0 {
			return -1
		}
		return fsys.LseekFile(sourceID, offset, whence)
	}

	switch whence {
	case SeekBegin:
		fsys.descs[fd].offset = 0
	case SeekCur:
		newPosition := fsys.descs[fd].offset + int(offset)
		if newPosition < 0 || newPosition > MaxFileSize {
			return -1
		}
		fsys.descs[fd].offset = newPosition
	case SeekEnd:
		fsys.descs[fd].offset = in.size
	default:
		return -1
	}
	return 0
}

// CreateLn creates linkName as a symbolic alias for the existing file
// fileName. Returns 0 on success, -1 if fileName doesn't exist or is
// itself a link, -2 if linkName is too long or already taken. Spec.md
// section 4.5.
//
// Rejecting a fileName that resolves to a link (rather than allowing a
// link-to-link chain the spec never defines traversal semantics for) is
// DESIGN.md's Open Question OQ-2.
func (fsys *FileSystem) CreateLn(fileName, linkName string) int {
	if !fsys.mounted {
		return -2
	}

	sourceID := fsys.nameToInode(fileName)
	if sourceID < 0 {
		return -1
	}
	if fsys.inodes[sourceID].isLink() {
		return -1
	}

	if len(linkName) > MaxNameLength {
		return -2
	}
	if fsys.nameToInode(linkName) >= 0 {
		return -2
	}

	id, err := fsys.ialloc()
	if err != nil {
		return -2
	}
	fsys.inodes[id] = newLinkInode(fileName, linkName)
	return 0
}

// RemoveLn deletes an existing symbolic link. Returns 0 on success, -1 if
// linkName doesn't resolve, -2 if freeing the inode fails. Spec.md section
// 4.5.
func (fsys *FileSystem) RemoveLn(linkName string) int {
	if !fsys.mounted {
		return -2
	}
	id := fsys.nameToInode(linkName)
	if id < 0 {
		return -1
	}
	if err := fsys.ifree(id); err != nil {
		return -2
	}
	return 0
}

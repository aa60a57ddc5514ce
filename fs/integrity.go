package fs

import "hash/crc32"

// integrityTargetName returns the name IncludeIntegrity/CheckFile should
// operate on when called through a descriptor: the file's own name, or for
// a link, the source it forwards to (the original C union aliased
// inode.name and soft_link.source at the same offset, which is why
// closeFileIntegrity could read inodes[fd].inode.name uniformly; the two
// separate fields here reproduce that by dispatching on kind explicitly).
func (in *inode) integrityTargetName() string {
	if in.isLink() {
		return in.linkSource
	}
	return in.name
}

// IncludeIntegrity computes and stores the CRC32 (IEEE polynomial) of
// every allocated direct block of name (or its link source) into the
// inode's crc array. Returns 0 on success, -1 if name doesn't exist, -2 on
// I/O failure. Spec.md section 4.6.
func (fsys *FileSystem) IncludeIntegrity(name string) int {
	if !fsys.mounted {
		return -2
	}
	id := fsys.nameToInode(name)
	if id < 0 {
		return -1
	}

	in := &fsys.inodes[id]
	if in.isLink() {
		sourceID := fsys.nameToInode(in.linkSource)
		if sourceID < 0 {
			return -1
		}
		return fsys.IncludeIntegrity(in.linkSource)
	}

	block := make([]byte, BlockSize)
	for i := 0; i < DirectBlockCount; i++ {
		if in.direct[i] == noBlock {
			continue
		}
		if err := fsys.device.ReadBlock(FirstDataBlock+int(in.direct[i]), block); err != nil {
			return -2
		}
		in.crc[i] = crc32.ChecksumIEEE(block)
	}
	return 0
}

// CheckFile verifies every direct block of name (or its link source) that
// carries a non-zero stored CRC against its current on-disk contents.
// Returns 0 if every tracked block matches, -1 if a mismatch is found
// (corruption), -2 if name doesn't exist or no block carries integrity
// information. Spec.md section 4.6.
func (fsys *FileSystem) CheckFile(name string) int {
	if !fsys.mounted {
		return -2
	}
	id := fsys.nameToInode(name)
	if id < 0 {
		return -2
	}

	in := &fsys.inodes[id]
	if in.isLink() {
		sourceID := fsys.nameToInode(in.linkSource)
		if sourceID < 0 {
			return -2
		}
		return fsys.CheckFile(in.linkSource)
	}

	hasIntegrity := false
	block := make([]byte, BlockSize)
	for i := 0; i < DirectBlockCount; i++ {
		if in.direct[i] == noBlock || in.crc[i] == 0 {
			continue
		}
		hasIntegrity = true
		if err := fsys.device.ReadBlock(FirstDataBlock+int(in.direct[i]), block); err != nil {
			return -2
		}
		if crc32.ChecksumIEEE(block) != in.crc[i] {
			return -1
		}
	}
	if !hasIntegrity {
		return -2
	}
	return 0
}

// OpenFileIntegrity checks name's integrity and, if it passes, opens it
// with the descriptor marked for an integrity-guarded session. Returns the
// file descriptor on success, -1 if name doesn't exist, -2 if corrupted,
// -3 on any other failure. Spec.md section 4.6.
func (fsys *FileSystem) OpenFileIntegrity(name string) int {
	if !fsys.mounted {
		return -3
	}
	id := fsys.nameToInode(name)
	if id < 0 {
		return -1
	}

	switch fsys.CheckFile(name) {
	case -2:
		return -3
	case -1:
		return -2
	}

	fd := fsys.OpenFile(name)
	if fd == -2 {
		return -3
	}
	fsys.descs[id].integrity = true
	return fd
}

// CloseFileIntegrity refreshes name's stored CRCs via IncludeIntegrity and
// closes the descriptor. Returns 0 on success, -1 if fd wasn't opened with
// OpenFileIntegrity, was already closed, or the refresh/close fails.
// Spec.md section 4.6.
func (fsys *FileSystem) CloseFileIntegrity(fd int) int {
	if !fsys.mounted {
		return -1
	}
	if fd < 0 || fd >= MaxFileNum {
		return -1
	}
	if !fsys.descs[fd].integrity {
		return -1
	}

	in := &fsys.inodes[fd]
	if fsys.IncludeIntegrity(in.integrityTargetName()) < 0 {
		return -1
	}

	if fsys.descs[fd].state == stateClosed {
		return -1
	}

	if in.isLink() {
		sourceID := fsys.nameToInode(in.linkSource)
		if sourceID < 0 {
			return -1
		}
		if fsys.CloseFile(sourceID) < 0 {
			return -1
		}
	}

	fsys.descs[fd].state = stateClosed
	return 0
}

package fs

// nameToInode scans every inode slot and returns the id of the one whose
// resolvable name matches name: the file name for a File inode, the alias
// (never the source) for a Link inode. It gates on the allocation bitmap
// rather than on inode field contents, per spec.md section 9's fix for the
// original C name_i's reliance on freed inodes staying zeroed.
func (fsys *FileSystem) nameToInode(name string) int {
	for i := 0; i < MaxFileNum; i++ {
		if !fsys.sb.inodeMap.Get(i) {
			continue
		}
		if fsys.inodes[i].resolvableName() == name {
			return i
		}
	}
	return -1
}

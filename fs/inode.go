package fs

import (
	"bytes"
	"encoding/binary"
)

// inodeKind discriminates the two inode variants. It is persisted
// explicitly on disk (see DESIGN.md, Open Question OQ-1) rather than
// inferred from field contents the way the original C union did.
type inodeKind uint8

const (
	kindFile inodeKind = 0
	kindLink inodeKind = 1
)

// inode is the tagged in-memory record for one inode slot: a File, which
// owns up to DirectBlockCount data blocks, or a Link, which forwards every
// operation to a source file by name.
type inode struct {
	kind inodeKind

	// File fields.
	name   string
	size   int
	direct [DirectBlockCount]int32
	crc    [DirectBlockCount]uint32

	// Link fields.
	linkSource string
	linkName   string
}

func newFileInode(name string, firstBlock int32) inode {
	in := inode{kind: kindFile, name: name, size: 0}
	in.direct[0] = firstBlock
	for i := 1; i < DirectBlockCount; i++ {
		in.direct[i] = noBlock
	}
	return in
}

func newLinkInode(source, link string) inode {
	return inode{kind: kindLink, linkSource: source, linkName: link}
}

func (in *inode) isFile() bool { return in.kind == kindFile }
func (in *inode) isLink() bool { return in.kind == kindLink }

// resolvableName returns the name name_i should compare candidates
// against: the file's own name for a File, or the alias (never the
// source) for a Link.
func (in *inode) resolvableName() string {
	if in.isLink() {
		return in.linkName
	}
	return in.name
}

// On-disk inode record, exactly 80 bytes (spec.md section 7):
//
//	offset  size  field
//	0       1     kind
//	1       3     padding
//	4       32    name (File) / source (Link)
//	36      44    variant payload, see below
//
// For a File, the 44-byte payload is size(4) + direct[5]*4(20) +
// crc[5]*4(20) = 44. For a Link, it is linkName(32) padded with 12 zero
// bytes.
const onDiskInodeSize = 1 + 3 + MaxNameLength + 44

func marshalInode(in inode) []byte {
	raw := make([]byte, onDiskInodeSize)
	raw[0] = byte(in.kind)

	switch in.kind {
	case kindFile:
		copy(raw[4:4+MaxNameLength], []byte(in.name))
		payload := raw[4+MaxNameLength:]
		binary.LittleEndian.PutUint32(payload[0:4], uint32(in.size))
		for i := 0; i < DirectBlockCount; i++ {
			binary.LittleEndian.PutUint32(payload[4+i*4:8+i*4], uint32(in.direct[i]))
		}
		for i := 0; i < DirectBlockCount; i++ {
			binary.LittleEndian.PutUint32(payload[24+i*4:28+i*4], in.crc[i])
		}
	case kindLink:
		copy(raw[4:4+MaxNameLength], []byte(in.linkSource))
		payload := raw[4+MaxNameLength:]
		copy(payload[0:MaxNameLength], []byte(in.linkName))
	}
	return raw
}

func unmarshalInode(raw []byte) inode {
	var in inode
	in.kind = inodeKind(raw[0])
	nameField := string(bytes.TrimRight(raw[4:4+MaxNameLength], "\x00"))
	payload := raw[4+MaxNameLength:]

	switch in.kind {
	case kindLink:
		in.linkSource = nameField
		in.linkName = string(bytes.TrimRight(payload[0:MaxNameLength], "\x00"))
	default:
		in.kind = kindFile
		in.name = nameField
		in.size = int(binary.LittleEndian.Uint32(payload[0:4]))
		for i := 0; i < DirectBlockCount; i++ {
			in.direct[i] = int32(binary.LittleEndian.Uint32(payload[4+i*4 : 8+i*4]))
		}
		for i := 0; i < DirectBlockCount; i++ {
			in.crc[i] = binary.LittleEndian.Uint32(payload[24+i*4 : 28+i*4])
		}
	}
	return in
}

package monitor

import "github.com/fsnotify/fsnotify"

// Kind classifies a filesystem event
type Kind int

const (
	KindOther  Kind = iota // Attribute changes and anything unrecognized
	KindAccess             // Read without modification
	KindCreate
	KindModify
	KindRemove
	KindRename
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindCreate:
		return "create"
	case KindModify:
		return "modify"
	case KindRemove:
		return "remove"
	case KindRename:
		return "rename"
	default:
		return "other"
	}
}

// fsnotify only reports open, read and close events on Linux and FreeBSD and
// does not export their bits; they follow Chmod in declaration order.
const (
	opOpen       = fsnotify.Chmod << 1
	opRead       = fsnotify.Chmod << 2
	opCloseWrite = fsnotify.Chmod << 3
	opCloseRead  = fsnotify.Chmod << 4

	accessOps = opOpen | opRead | opCloseRead
)

// Classify maps an fsnotify operation to a Kind.
// An event is Access only when every bit it carries is a read-side bit.
func Classify(op fsnotify.Op) Kind {
	switch {
	case op != 0 && op&^accessOps == 0:
		return KindAccess
	case op.Has(fsnotify.Create):
		return KindCreate
	case op.Has(fsnotify.Remove):
		return KindRemove
	case op.Has(fsnotify.Rename):
		return KindRename
	case op.Has(fsnotify.Write), op.Has(opCloseWrite):
		return KindModify
	default:
		return KindOther
	}
}

// ShouldRebuild reports whether an event of this kind invalidates the index
func ShouldRebuild(k Kind) bool {
	return k != KindAccess
}

package message

import "fmt"

// OpKind names a submission that waits on the provider.
type OpKind int

const (
	CreateOp OpKind = iota + 1
	EditOp
	DeleteOp
)

var opKindNames = map[OpKind]string{
	CreateOp: "create",
	EditOp:   "edit",
	DeleteOp: "delete",
}

func (kind OpKind) String() string {
	name, ok := opKindNames[kind]
	if !ok {
		return "unknown"
	}
	return name
}

// Op identifies one in-flight submission.
// Seq is assigned by the table so a stale result can be told apart.
type Op struct {
	Kind OpKind
	Seq  int
}

func (op Op) String() string {
	return fmt.Sprintf("%s#%d", op.Kind, op.Seq)
}

package domain

import "time"

// ObjectID is the hex content hash of a commit, tree or blob
type ObjectID string

// String returns the hex form of the id
func (id ObjectID) String() string {
	return string(id)
}

// Short returns the abbreviated id used in logs and CLI output
func (id ObjectID) Short() string {
	if len(id) > 7 {
		return string(id[:7])
	}
	return string(id)
}

// IsZero reports whether the id is empty
func (id ObjectID) IsZero() bool {
	return id == ""
}

// ObjectType is the kind of a tree entry
type ObjectType string

const (
	ObjectBlob ObjectType = "blob"
	ObjectTree ObjectType = "tree"
)

// Identity is a name/email pair used for authorship and sign-off
type Identity struct {
	Email string
	Name  string
}

// String formats the identity as "Name <email>"
func (i Identity) String() string {
	return i.Name + " <" + i.Email + ">"
}

// Signature is an identity stamped with a time
type Signature struct {
	Identity
	When time.Time
}

// Commit is an immutable commit node read from an object store
type Commit struct {
	Author    Signature
	Committer Signature
	ID        ObjectID
	Message   string
	ParentIDs []ObjectID
	TreeID    ObjectID
}

// TreeEntry is one entry of a tree listing
type TreeEntry struct {
	ID   ObjectID
	Name string
	Type ObjectType
}

package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Sequence keys, managed by badger.Sequence
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
)

// postKey zero-pads the id so that key order matches id order.
func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", PostKeyPrefix, id))
}

// commentKey groups comments under their post for prefix scans.
func commentKey(postID, id int) []byte {
	return []byte(fmt.Sprintf("%s%010d:%010d", CommentKeyPrefix, postID, id))
}

func commentPostPrefix(postID int) []byte {
	return []byte(fmt.Sprintf("%s%010d:", CommentKeyPrefix, postID))
}

// parseCommentKey extracts the post and comment ids from a comment key.
func parseCommentKey(key []byte) (postID, id int, err error) {
	_, err = fmt.Sscanf(string(key), CommentKeyPrefix+"%d:%d", &postID, &id)
	return postID, id, err
}

// nextID draws the next id from seq. Badger sequences start at zero, ids
// start at one.
func nextID(seq *badger.Sequence) (int, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, errors.Wrap(err, "next id")
	}
	return int(n) + 1, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal entity")
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return errors.Wrap(err, "failed to unmarshal entity")
	}
	return nil
}

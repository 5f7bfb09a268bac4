package repositories

import (
	"context"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
// seq allocates ids; it is shared with nothing else.
func NewBadgerCommentRepository(db *badger.DB, seq *badger.Sequence) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db, seq: seq}
}

// Insert stores a new comment and returns its assigned id. The parent post
// is not checked here.
func (r *BadgerCommentRepository) Insert(ctx context.Context, comment *models.Comment) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// Ids come from the sequence; the transaction only writes the new key.
	id, err := nextID(r.seq)
	if err != nil {
		return 0, errors.Wrap(err, "insert comment")
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		row := models.Comment{ID: id, Text: comment.Text, PostID: comment.PostID}
		data, err := marshalEntity(&row)
		if err != nil {
			return err
		}

		// Save comment with post ID in key for efficient listing
		return txn.Set(commentKey(row.PostID, id), data)
	})
	if err != nil {
		return 0, errors.Wrap(err, "insert comment")
	}
	return id, nil
}

// FindByID retrieves a comment by ID. Keys are scanned without reading
// values until the matching id is found.
func (r *BadgerCommentRepository) FindByID(ctx context.Context, id int) (*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var comment *models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			_, commentID, err := parseCommentKey(item.Key())
			if err != nil || commentID != id {
				continue
			}

			comment = &models.Comment{}
			return item.Value(func(val []byte) error {
				return unmarshalEntity(val, comment)
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get comment %d", id)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

// FindByPost retrieves all comments for a post in id order.
func (r *BadgerCommentRepository) FindByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comments := []*models.Comment{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := commentPostPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return err
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "list comments of post %d", postID)
	}
	return comments, nil
}

package repositories

import (
	"context"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerPostRepository creates a new BadgerPostRepository
// seq allocates ids; it is shared with nothing else.
func NewBadgerPostRepository(db *badger.DB, seq *badger.Sequence) *BadgerPostRepository {
	return &BadgerPostRepository{db: db, seq: seq}
}

// Find returns every post in id order.
func (r *BadgerPostRepository) Find(ctx context.Context) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	return posts, nil
}

// FindByID retrieves a post by ID
func (r *BadgerPostRepository) FindByID(ctx context.Context, id int) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err == ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get post %d", id)
	}
	return &post, nil
}

// Insert stores a new post and returns its assigned id.
func (r *BadgerPostRepository) Insert(ctx context.Context, post *models.Post) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// Ids come from the sequence; the transaction only writes the new key.
	id, err := nextID(r.seq)
	if err != nil {
		return 0, errors.Wrap(err, "insert post")
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		row := models.Post{ID: id, Title: post.Title, Contents: post.Contents}
		data, err := marshalEntity(&row)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})
	if err != nil {
		return 0, errors.Wrap(err, "insert post")
	}
	return id, nil
}

// Update overwrites the title and contents of a post. It returns the number
// of posts changed, which is zero when the id does not exist.
func (r *BadgerPostRepository) Update(ctx context.Context, id int, changes *models.Post) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int
	err := r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		var post models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		}); err != nil {
			return err
		}
		post.Apply(changes)

		data, err := marshalEntity(&post)
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		count = 1
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "update post %d", id)
	}
	return count, nil
}

// Remove deletes a post by ID. Comments of the post are left in place.
func (r *BadgerPostRepository) Remove(ctx context.Context, id int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int
	err := r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		if err := txn.Delete(key); err != nil {
			return err
		}
		count = 1
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "remove post %d", id)
	}
	return count, nil
}

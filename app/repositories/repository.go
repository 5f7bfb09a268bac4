package repositories

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// BadgerStore is a Store backed by an embedded Badger database.
type BadgerStore struct {
	db         *badger.DB
	dbPath     string
	postSeq    *badger.Sequence
	commentSeq *badger.Sequence
	posts      *BadgerPostRepository
	comments   *BadgerCommentRepository
}

// seqBandwidth is how many ids a sequence leases per write. Unused ids of a
// lease are handed back on Close.
const seqBandwidth = 100

// NewBadgerStore opens the database at path. An empty path opens an
// in-memory database, which is what the tests use.
func NewBadgerStore(path string, log zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{log: log.With().Str("component", "badger").Logger()}).
		WithLoggingLevel(badger.WARNING).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger at %q", path)
	}

	postSeq, err := db.GetSequence([]byte(PostSeqKey), seqBandwidth)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "post sequence")
	}
	commentSeq, err := db.GetSequence([]byte(CommentSeqKey), seqBandwidth)
	if err != nil {
		postSeq.Release()
		db.Close()
		return nil, errors.Wrap(err, "comment sequence")
	}

	return &BadgerStore{
		db:         db,
		dbPath:     path,
		postSeq:    postSeq,
		commentSeq: commentSeq,
		posts:      NewBadgerPostRepository(db, postSeq),
		comments:   NewBadgerCommentRepository(db, commentSeq),
	}, nil
}

func (s *BadgerStore) Posts() PostRepository {
	return s.posts
}

func (s *BadgerStore) Comments() CommentRepository {
	return s.comments
}

// Close hands back unused leased ids and closes the database.
func (s *BadgerStore) Close() error {
	relErr := s.releaseSequences()
	if err := s.db.Close(); err != nil {
		return err
	}
	return relErr
}

// releaseSequences writes the next unused id back to each sequence key.
// The sequences stay usable and lease again from the stored value, so after
// a drop they restart at 1 and after a load they continue the loaded data.
func (s *BadgerStore) releaseSequences() error {
	for _, seq := range []*badger.Sequence{s.postSeq, s.commentSeq} {
		// a missing key means nothing was leased since the last drop
		if err := seq.Release(); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrap(err, "release sequence")
		}
	}
	return nil
}

// Clear drops every key, sequences included.
func (s *BadgerStore) Clear() error {
	if err := s.releaseSequences(); err != nil {
		return err
	}
	if err := s.db.DropAll(); err != nil {
		return errors.Wrap(err, "drop badger")
	}
	return nil
}

// Backup writes a full backup of the database to w.
func (s *BadgerStore) Backup(w io.Writer) error {
	if err := s.releaseSequences(); err != nil {
		return err
	}
	if _, err := s.db.Backup(w, 0); err != nil {
		return errors.Wrap(err, "backup badger")
	}
	return nil
}

// Load replaces the contents of the database with a backup produced by
// Backup. Loaded entries keep their original versions, so existing keys are
// dropped first.
func (s *BadgerStore) Load(r io.Reader) error {
	if err := s.Clear(); err != nil {
		return err
	}
	if err := s.db.Load(r, 4); err != nil {
		return errors.Wrap(err, "restore badger")
	}
	return nil
}

// Verify reads a backup into a scratch in-memory database, so a damaged file
// is reported before anything live is touched.
func Verify(r io.Reader) (err error) {
	// badger trusts the length prefixes in the stream and panics on a
	// file that is not a backup at all
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Errorf("invalid backup: %v", rec)
		}
	}()

	scratch, err := NewBadgerStore("", zerolog.Nop())
	if err != nil {
		return err
	}
	defer scratch.Close()

	if err = scratch.db.Load(r, 4); err != nil {
		return errors.Wrap(err, "invalid backup")
	}
	return nil
}

// badgerLogger routes Badger's internal logging through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msg(trimLine(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msg(trimLine(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Info().Msg(trimLine(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msg(trimLine(format, args...))
}

func trimLine(format string, args ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

// Package store holds the local, authoritative copy of the bookmark
// collection and mediates every mutation through the remote service.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/yusi/shuqian/internal/locale"
	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/model"
)

// ErrClosed is returned by operations that complete after Close.
var ErrClosed = errors.New("store closed")

// Remote is the bookmark service the store mirrors.
type Remote interface {
	List(ctx context.Context) ([]model.Bookmark, error)
	Create(ctx context.Context, b model.Bookmark) error
	Update(ctx context.Context, id string, patch model.Patch) error
	Delete(ctx context.Context, id string) error
}

// Op identifies a store operation, used to pick the error message.
type Op int

const (
	OpNone Op = iota
	OpLoad
	OpAdd
	OpDelete
	OpEdit
	OpFavorite
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	case OpEdit:
		return "edit"
	case OpFavorite:
		return "favorite"
	default:
		return "none"
	}
}

// Options configures a Store.
type Options struct {
	DefaultCategory model.Category  // add-form preset, defaults to CategoryOther
	Catalog         *locale.Catalog // error messages, defaults to zh-Hans
	Logger          logger.Logger   // optional
	NewID           func() string   // optional, defaults to model.NewID
}

// generation counts dispatched operations per record. A completion whose
// token is no longer current has been superseded and is not applied.
type generation struct {
	fields   uint64
	favorite uint64
}

// Store is the state container for one UI session.
type Store struct {
	remote          Remote
	log             logger.Logger
	catalog         *locale.Catalog
	defaultCategory model.Category
	newID           func() string

	mu        sync.Mutex
	bookmarks []model.Bookmark
	inFlight  int
	errOp     Op
	errMsg    string
	lastErr   error
	form      model.Draft
	gens      map[string]*generation
	loadGen   uint64
	version   uint64
	closed    bool
}

// New creates an empty Store over remote. Call Load to populate it.
func New(remote Remote, opts Options) *Store {
	def := opts.DefaultCategory
	if def == "" {
		def = model.CategoryOther
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = locale.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	newID := opts.NewID
	if newID == nil {
		newID = model.NewID
	}

	return &Store{
		remote:          remote,
		log:             log,
		catalog:         catalog,
		defaultCategory: def,
		newID:           newID,
		bookmarks:       []model.Bookmark{},
		form:            model.NewDraft(def),
		gens:            make(map[string]*generation),
	}
}

// Close ends the session. Operations still in flight complete against the
// remote but their results are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Load replaces the collection with the remote one. On failure the
// collection is emptied and the error slot is set.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.beginLocked()
	s.loadGen++
	token := s.loadGen
	s.mu.Unlock()

	bookmarks, err := s.remote.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if s.closed {
		return ErrClosed
	}
	if token != s.loadGen {
		s.log.Debug("load superseded", logger.Uint64("token", token))
		return nil
	}

	if err != nil {
		s.bookmarks = []model.Bookmark{}
		s.version++
		s.failLocked(OpLoad, err)
		return err
	}

	s.bookmarks = dedupe(bookmarks, s.log)
	s.version++
	s.log.Info("bookmarks loaded", logger.Int("count", len(s.bookmarks)))
	return nil
}

// Add creates a bookmark from d. A draft without title or URL is ignored:
// no request is sent and (nil, nil) is returned. On success the record is
// appended and the add form is reset; on failure the form is kept.
func (s *Store) Add(ctx context.Context, d model.Draft) (*model.Bookmark, error) {
	if !d.Complete() {
		return nil, nil
	}
	if d.Category == "" {
		d.Category = s.defaultCategory
	}

	b := model.NewBookmark(s.newID(), d)

	s.mu.Lock()
	s.beginLocked()
	s.mu.Unlock()

	err := s.remote.Create(ctx, b)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if s.closed {
		return nil, ErrClosed
	}
	if err != nil {
		s.failLocked(OpAdd, err)
		return nil, err
	}

	s.bookmarks = append(s.bookmarks, b)
	s.version++
	s.form = model.NewDraft(s.defaultCategory)
	s.log.Info("bookmark added", logger.String("id", b.ID))
	return &b, nil
}

// Delete removes the bookmark remotely, then locally. Edits and favorite
// syncs still in flight for the record are dropped once the delete is
// confirmed.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.beginLocked()
	s.mu.Unlock()

	err := s.remote.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if s.closed {
		return ErrClosed
	}
	if err != nil {
		s.failLocked(OpDelete, err)
		return err
	}

	if idx := s.indexLocked(id); idx >= 0 {
		s.bookmarks = append(s.bookmarks[:idx:idx], s.bookmarks[idx+1:]...)
		s.version++
	}
	delete(s.gens, id)
	s.log.Info("bookmark deleted", logger.String("id", id))
	return nil
}

// Edit replaces the four editable fields remotely, then merges them into
// the local record. A completion superseded by a later Edit of the same
// record is dropped.
func (s *Store) Edit(ctx context.Context, id string, f model.Fields) error {
	s.mu.Lock()
	s.beginLocked()
	gen := s.genLocked(id)
	gen.fields++
	token := gen.fields
	s.mu.Unlock()

	err := s.remote.Update(ctx, id, model.PatchFromFields(f))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if s.closed {
		return ErrClosed
	}
	if err != nil {
		s.failLocked(OpEdit, err)
		return err
	}

	if g, ok := s.gens[id]; !ok || g.fields != token {
		s.log.Debug("edit superseded", logger.String("id", id), logger.Uint64("token", token))
		return nil
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}
	s.bookmarks[idx].Apply(f)
	s.version++
	s.log.Info("bookmark edited", logger.String("id", id))
	return nil
}

// ToggleFavorite flips the favorite flag locally and returns the new value.
// It never touches the network and never changes the loading state.
func (s *Store) ToggleFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.bookmarks[idx].Favorite = !s.bookmarks[idx].Favorite
	s.version++
	return s.bookmarks[idx].Favorite
}

// SyncFavorite sends the record's current favorite flag to the remote. On
// failure the local flag is reverted unless a newer sync has been issued.
func (s *Store) SyncFavorite(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	want := s.bookmarks[idx].Favorite
	s.beginLocked()
	gen := s.genLocked(id)
	gen.favorite++
	token := gen.favorite
	s.mu.Unlock()

	err := s.remote.Update(ctx, id, model.Patch{Favorite: &want})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if s.closed {
		return ErrClosed
	}
	if err == nil {
		return nil
	}

	s.failLocked(OpFavorite, err)
	if g, ok := s.gens[id]; ok && g.favorite == token {
		if idx := s.indexLocked(id); idx >= 0 && s.bookmarks[idx].Favorite == want {
			s.bookmarks[idx].Favorite = !want
			s.version++
		}
	}
	return err
}

// Bookmarks returns a copy of the collection in display order.
func (s *Store) Bookmarks() []model.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookmarks)
}

// Get finds a bookmark by ID.
func (s *Store) Get(id string) (model.Bookmark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.bookmarks[idx], true
	}
	return model.Bookmark{}, false
}

// HasURL reports whether any bookmark already points at url.
func (s *Store) HasURL(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

// Version changes every time the collection changes.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Loading reports whether any remote operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Err returns the localized message in the error slot, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ErrOp returns the operation that filled the error slot.
func (s *Store) ErrOp() Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errOp
}

// LastError returns the underlying error behind Err.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError empties the error slot.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErrorLocked()
}

// AddForm returns the add-form buffer.
func (s *Store) AddForm() model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetAddForm replaces the add-form buffer.
func (s *Store) SetAddForm(d model.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = d
}

// DefaultCategory returns the add-form category preset.
func (s *Store) DefaultCategory() model.Category {
	return s.defaultCategory
}

func (s *Store) beginLocked() {
	s.inFlight++
	s.clearErrorLocked()
}

func (s *Store) clearErrorLocked() {
	s.errOp = OpNone
	s.errMsg = ""
	s.lastErr = nil
}

func (s *Store) failLocked(op Op, err error) {
	s.errOp = op
	s.errMsg = s.message(op)
	s.lastErr = err
	s.log.Error("bookmark operation failed", logger.String("op", op.String()), logger.Error(err))
}

func (s *Store) message(op Op) string {
	switch op {
	case OpLoad:
		return s.catalog.LoadFailed
	case OpAdd:
		return s.catalog.AddFailed
	case OpDelete:
		return s.catalog.DeleteFailed
	case OpEdit:
		return s.catalog.EditFailed
	case OpFavorite:
		return s.catalog.FavoriteFailed
	default:
		return ""
	}
}

func (s *Store) genLocked(id string) *generation {
	g, ok := s.gens[id]
	if !ok {
		g = &generation{}
		s.gens[id] = g
	}
	return g
}

func (s *Store) indexLocked(id string) int {
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id {
			return i
		}
	}
	return -1
}

// dedupe keeps the first bookmark for each ID.
func dedupe(bookmarks []model.Bookmark, log logger.Logger) []model.Bookmark {
	seen := make(map[string]bool, len(bookmarks))
	out := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if seen[b.ID] {
			log.Warn("duplicate bookmark id from remote", logger.String("id", b.ID))
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}

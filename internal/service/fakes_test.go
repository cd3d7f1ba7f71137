package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/realtime"
	"github.com/plankhq/plank-api/internal/store"
)

// memoryDB backs the in-memory store fakes. It mirrors the semantics the
// postgres package provides: atomic append ranks, unique constraints, and
// cascade on board delete.
type memoryDB struct {
	mu      sync.Mutex
	users   map[uuid.UUID]domain.User
	boards  map[uuid.UUID]domain.Board
	columns map[uuid.UUID]domain.Column
	tasks   map[uuid.UUID]domain.Task
	members map[uuid.UUID]map[uuid.UUID]domain.BoardMember
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:   make(map[uuid.UUID]domain.User),
		boards:  make(map[uuid.UUID]domain.Board),
		columns: make(map[uuid.UUID]domain.Column),
		tasks:   make(map[uuid.UUID]domain.Task),
		members: make(map[uuid.UUID]map[uuid.UUID]domain.BoardMember),
	}
}

// --- UserStore fake ---

type fakeUserStore struct{ db *memoryDB }

var _ store.UserStore = (*fakeUserStore)(nil)

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	s.db.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	user, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range s.db.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// --- BoardStore fake ---

type fakeBoardStore struct{ db *memoryDB }

var _ store.BoardStore = (*fakeBoardStore)(nil)

func (s *fakeBoardStore) Create(ctx context.Context, board *domain.Board) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[board.OwnerID]; !ok {
		return store.ErrInvalidEntity
	}
	s.db.boards[board.ID] = *board
	return nil
}

func (s *fakeBoardStore) GetAccess(
	ctx context.Context,
	boardID, actorID uuid.UUID,
) (*store.BoardAccess, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	board, ok := s.db.boards[boardID]
	if !ok {
		return nil, store.ErrBoardNotFound
	}

	role := domain.RoleNone
	switch {
	case board.OwnerID == actorID:
		role = domain.RoleOwner
	default:
		if _, ok := s.db.members[boardID][actorID]; ok {
			role = domain.RoleMember
		}
	}

	b := board
	return &store.BoardAccess{Board: &b, Role: role}, nil
}

func (s *fakeBoardStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Board, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	boards := make([]domain.Board, 0)
	for id, board := range s.db.boards {
		if board.OwnerID == userID {
			boards = append(boards, board)
			continue
		}
		if _, ok := s.db.members[id][userID]; ok {
			boards = append(boards, board)
		}
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].UpdatedAt.After(boards[j].UpdatedAt)
	})
	return boards, nil
}

func (s *fakeBoardStore) Delete(ctx context.Context, boardID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.boards[boardID]; !ok {
		return store.ErrBoardNotFound
	}
	delete(s.db.boards, boardID)
	delete(s.db.members, boardID)
	for columnID, column := range s.db.columns {
		if column.BoardID != boardID {
			continue
		}
		delete(s.db.columns, columnID)
		for taskID, task := range s.db.tasks {
			if task.ColumnID == columnID {
				delete(s.db.tasks, taskID)
			}
		}
	}
	return nil
}

func (s *fakeBoardStore) AddMember(ctx context.Context, member *domain.BoardMember) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.boards[member.BoardID]; !ok {
		return store.ErrInvalidEntity
	}
	grants, ok := s.db.members[member.BoardID]
	if !ok {
		grants = make(map[uuid.UUID]domain.BoardMember)
		s.db.members[member.BoardID] = grants
	}
	if _, ok := grants[member.UserID]; ok {
		return store.ErrMemberExists
	}
	grants[member.UserID] = *member
	return nil
}

func (s *fakeBoardStore) ListMembers(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	members := make([]uuid.UUID, 0)
	for userID := range s.db.members[boardID] {
		members = append(members, userID)
	}
	return members, nil
}

// --- ColumnStore fake ---

type fakeColumnStore struct{ db *memoryDB }

var _ store.ColumnStore = (*fakeColumnStore)(nil)

func (s *fakeColumnStore) Create(ctx context.Context, column *domain.Column) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.boards[column.BoardID]; !ok {
		return store.ErrInvalidEntity
	}
	position := 0
	for _, sibling := range s.db.columns {
		if sibling.BoardID == column.BoardID && sibling.Position >= position {
			position = sibling.Position + 1
		}
	}
	column.Position = position
	s.db.columns[column.ID] = *column
	return nil
}

func (s *fakeColumnStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	column, ok := s.db.columns[id]
	if !ok {
		return nil, store.ErrColumnNotFound
	}
	return &column, nil
}

func (s *fakeColumnStore) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	columns := make([]domain.Column, 0)
	for _, column := range s.db.columns {
		if column.BoardID == boardID {
			columns = append(columns, column)
		}
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].Position != columns[j].Position {
			return columns[i].Position < columns[j].Position
		}
		return columns[i].CreatedAt.Before(columns[j].CreatedAt)
	})
	return columns, nil
}

func (s *fakeColumnStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.columns[id]; !ok {
		return store.ErrColumnNotFound
	}
	delete(s.db.columns, id)
	for taskID, task := range s.db.tasks {
		if task.ColumnID == id {
			delete(s.db.tasks, taskID)
		}
	}
	return nil
}

// --- TaskStore fake ---

type fakeTaskStore struct{ db *memoryDB }

var _ store.TaskStore = (*fakeTaskStore)(nil)

func (s *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.columns[task.ColumnID]; !ok {
		return store.ErrInvalidEntity
	}
	position := 0
	for _, sibling := range s.db.tasks {
		if sibling.ColumnID == task.ColumnID && sibling.Position >= position {
			position = sibling.Position + 1
		}
	}
	task.Position = position
	s.db.tasks[task.ID] = *task
	return nil
}

func (s *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	task, ok := s.db.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

func (s *fakeTaskStore) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	tasks := make([]domain.Task, 0)
	for _, task := range s.db.tasks {
		column, ok := s.db.columns[task.ColumnID]
		if ok && column.BoardID == boardID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *fakeTaskStore) Update(ctx context.Context, task *domain.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	if _, ok := s.db.columns[task.ColumnID]; !ok {
		return store.ErrInvalidEntity
	}
	s.db.tasks[task.ID] = *task
	return nil
}

func (s *fakeTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.db.tasks, id)
	return nil
}

// --- cache fake ---

type fakeCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID][]domain.Board
	invalidated []uuid.UUID
}

var _ BoardListCache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID][]domain.Board)}
}

func (c *fakeCache) Get(ctx context.Context, userID uuid.UUID) ([]domain.Board, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	boards, ok := c.entries[userID]
	return boards, ok
}

func (c *fakeCache) Set(ctx context.Context, userID uuid.UUID, boards []domain.Board) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = boards
}

func (c *fakeCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
}

// --- publisher fake ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

var _ EventPublisher = (*recordingPublisher)(nil)

func (p *recordingPublisher) Publish(ctx context.Context, event realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) recorded() []realtime.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]realtime.Event(nil), p.events...)
}

// --- fixture ---

// fixture wires the fakes into fully constructed services for tests.
type fixture struct {
	db      *memoryDB
	users   *fakeUserStore
	boards  *fakeBoardStore
	columns *fakeColumnStore
	tasks   *fakeTaskStore
	cache   *fakeCache
	pub     *recordingPublisher

	boardSvc  *BoardService
	columnSvc *ColumnService
	taskSvc   *TaskService
}

func newFixture() *fixture {
	db := newMemoryDB()
	f := &fixture{
		db:      db,
		users:   &fakeUserStore{db: db},
		boards:  &fakeBoardStore{db: db},
		columns: &fakeColumnStore{db: db},
		tasks:   &fakeTaskStore{db: db},
		cache:   newFakeCache(),
		pub:     &recordingPublisher{},
	}

	authz := NewAccessResolver(f.boards, nil)
	f.boardSvc = NewBoardService(f.boards, f.columns, f.tasks, f.users, authz, f.cache, f.pub, nil)
	f.columnSvc = NewColumnService(f.columns, authz, f.pub, nil)
	f.taskSvc = NewTaskService(f.tasks, f.columns, authz, f.pub, nil)

	return f
}

func (f *fixture) addUser(email, name string) *domain.User {
	user, err := domain.NewUser(email, name, "hashed-password")
	if err != nil {
		panic(err)
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

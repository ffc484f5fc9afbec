package services

import (
	"context"
	"errors"
	"testing"

	"github.com/antonk9218/paybuddy/internal/common"
	"github.com/antonk9218/paybuddy/internal/server/models"
)

func TestAddConnection_SelfEdge(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	// the lookup must not run for self-edges, so no Begin is expected
	s := NewConnectionService(db, &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}})

	err := s.AddConnection(context.Background(), 3, 3)
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want common.ErrValidation, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestAddConnection_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	connRepo := &fakeConnectionsRepo{}
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{
			1: {ID: 1}, 2: {ID: 2},
		}},
		c: connRepo,
	}
	s := NewConnectionService(db, rm)

	if err := s.AddConnection(context.Background(), 1, 2); err != nil {
		t.Fatalf("AddConnection error: %v", err)
	}
	if len(connRepo.created) != 1 || connRepo.created[0].UserID != 1 || connRepo.created[0].ConnectionID != 2 {
		t.Fatalf("unexpected edges: %+v", connRepo.created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestAddConnection_MissingEndpoint(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{1: {ID: 1}}},
		c: &fakeConnectionsRepo{},
	}
	s := NewConnectionService(db, rm)

	err := s.AddConnection(context.Background(), 1, 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestAddConnection_Duplicate(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{
			1: {ID: 1}, 2: {ID: 2},
		}},
		c: &fakeConnectionsRepo{existsOut: true},
	}
	s := NewConnectionService(db, rm)

	err := s.AddConnection(context.Background(), 1, 2)
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want common.ErrAlreadyExists, got %v", err)
	}
}

func TestRemoveConnection_MissingEdge(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{
			1: {ID: 1}, 2: {ID: 2},
		}},
		c: &fakeConnectionsRepo{deleteErr: common.NotFoundf("connection between %d and %d", 1, 2)},
	}
	s := NewConnectionService(db, rm)

	err := s.RemoveConnection(context.Background(), 1, 2)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestRemoveConnection_MissingEndpoint(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{1: {ID: 1}}},
		c: &fakeConnectionsRepo{},
	}
	s := NewConnectionService(db, rm)

	err := s.RemoveConnection(context.Background(), 1, 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestRemoveConnection_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{
			1: {ID: 1}, 2: {ID: 2},
		}},
		c: &fakeConnectionsRepo{},
	}
	s := NewConnectionService(db, rm)

	if err := s.RemoveConnection(context.Background(), 1, 2); err != nil {
		t.Fatalf("RemoveConnection error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestListConnections_Enriched(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{
			1: {ID: 1, Username: "alice", Email: "a@x.com"},
			2: {ID: 2, Username: "bob", Email: "b@x.com"},
		}},
		c: &fakeConnectionsRepo{listOut: []*models.Connection{
			{UserID: 1, ConnectionID: 2},
		}},
	}
	s := NewConnectionService(db, rm)

	got, err := s.ListConnections(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListConnections error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 connection, got %d", len(got))
	}
	v := got[0]
	if v.MyUsername != "alice" || v.FriendEmail != "b@x.com" || v.FriendUsername != "bob" {
		t.Fatalf("unexpected view: %+v", v)
	}
}

func TestListConnections_MissingCounterparty(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{
			1: {ID: 1, Username: "alice", Email: "a@x.com"},
		}},
		c: &fakeConnectionsRepo{listOut: []*models.Connection{
			{UserID: 1, ConnectionID: 9},
		}},
	}
	s := NewConnectionService(db, rm)

	_, err := s.ListConnections(context.Background(), 1)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestListConnections_UnknownOwner(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewConnectionService(db, &fakeRepoManager{u: &fakeUsersRepo{}, c: &fakeConnectionsRepo{}})

	_, err := s.ListConnections(context.Background(), 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

package mongo

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

func TestListFilter_ScopesAndEscapesSearch(t *testing.T) {
	f := listFilter(ports.DashboardFilter{UserID: "u1", NameContains: "q1.(x)"})

	if f["userId"] != "u1" {
		t.Fatalf("expected userId filter, got %v", f["userId"])
	}
	re, ok := f["name"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex name filter, got %T", f["name"])
	}
	if re.Pattern != `q1\.\(x\)` || re.Options != "i" {
		t.Fatalf("unexpected regex: %+v", re)
	}
}

func TestListFilter_Unscoped(t *testing.T) {
	if f := listFilter(ports.DashboardFilter{}); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}
}

func TestByID(t *testing.T) {
	oid := primitive.NewObjectID()

	f, err := byID(oid.Hex(), "owner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f["_id"] != oid || f["userId"] != "owner" {
		t.Fatalf("unexpected filter: %v", f)
	}

	if _, err := byID("not-an-object-id", ""); !errors.Is(err, domain.ErrDashboardNotFound) {
		t.Fatalf("expected ErrDashboardNotFound, got %v", err)
	}
}

func namespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func dashboardDoc(id primitive.ObjectID, name string, at time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: "u1"},
		{Key: "name", Value: name},
		{Key: "url", Value: "#"},
		{Key: "icon", Value: string(domain.IconFolder)},
		{Key: "createdAt", Value: at},
		{Key: "updatedAt", Value: at},
	}
}

func TestDashboardRepository_MockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert assigns id and reads back unchanged", func(mt *mtest.T) {
		repo := &DashboardRepository{col: mt.Coll}
		at := time.Date(2025, 3, 1, 12, 0, 0, 123456789, time.UTC)

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		created, err := repo.Insert(ctx, &domain.Dashboard{
			UserID: "u1", Name: "Sales", URL: "#", Icon: domain.IconFolder,
			CreatedAt: at, UpdatedAt: at,
		})
		if err != nil {
			mt.Fatalf("insert: %v", err)
		}

		sent := mt.GetStartedEvent()
		if sent == nil || sent.CommandName != "insert" {
			mt.Fatalf("expected insert command, got %+v", sent)
		}
		stored := sent.Command.Lookup("documents", "0").Document()
		if oid := stored.Lookup("_id").ObjectID(); created.ID != oid.Hex() {
			mt.Fatalf("expected id %s, got %q", oid.Hex(), created.ID)
		}
		if created.CreatedAt.Nanosecond() != 123000000 {
			mt.Fatalf("createdAt keeps sub-millisecond digits: %v", created.CreatedAt)
		}

		var doc bson.D
		if err := bson.Unmarshal(stored, &doc); err != nil {
			mt.Fatalf("decode sent document: %v", err)
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, doc))
		read, err := repo.FindByID(ctx, created.ID, "u1")
		if err != nil {
			mt.Fatalf("find by id: %v", err)
		}
		if diff := cmp.Diff(created, read); diff != "" {
			mt.Fatalf("read differs from insert (-inserted +read):\n%s", diff)
		}
	})

	mt.Run("find sorts newest first and scopes by owner", func(mt *mtest.T) {
		repo := &DashboardRepository{col: mt.Coll}
		newer := dashboardDoc(primitive.NewObjectID(), "Sales", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
		older := dashboardDoc(primitive.NewObjectID(), "Marketing", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, newer, older))
		items, err := repo.Find(ctx, ports.DashboardFilter{UserID: "u1"})
		if err != nil {
			mt.Fatalf("find: %v", err)
		}

		var names []string
		for _, d := range items {
			names = append(names, d.Name)
		}
		if diff := cmp.Diff([]string{"Sales", "Marketing"}, names); diff != "" {
			mt.Fatalf("order mismatch (-want +got):\n%s", diff)
		}

		cmd := mt.GetStartedEvent().Command
		if dir := cmd.Lookup("sort", "createdAt").AsInt64(); dir != -1 {
			mt.Fatalf("expected createdAt descending, got %d", dir)
		}
		if owner := cmd.Lookup("filter", "userId").StringValue(); owner != "u1" {
			mt.Fatalf("expected owner filter u1, got %q", owner)
		}
	})

	mt.Run("find with no matches is empty, not nil", func(mt *mtest.T) {
		repo := &DashboardRepository{col: mt.Coll}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		items, err := repo.Find(ctx, ports.DashboardFilter{UserID: "u1"})
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if items == nil || len(items) != 0 {
			mt.Fatalf("expected empty slice, got %#v", items)
		}
	})

	mt.Run("update sets only the patched fields", func(mt *mtest.T) {
		repo := &DashboardRepository{col: mt.Coll}
		id := primitive.NewObjectID()
		at := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
		after := dashboardDoc(id, "Renamed", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		after[len(after)-1] = bson.E{Key: "updatedAt", Value: at}

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: after}))
		name := "Renamed"
		d, err := repo.Update(ctx, id.Hex(), "u1", domain.DashboardPatch{Name: &name}, at)
		if err != nil {
			mt.Fatalf("update: %v", err)
		}
		if d.Name != "Renamed" || d.URL != "#" || !d.UpdatedAt.Equal(at) {
			mt.Fatalf("unexpected result: %+v", d)
		}

		cmd := mt.GetStartedEvent().Command
		elems, err := cmd.Lookup("update", "$set").Document().Elements()
		if err != nil {
			mt.Fatalf("read $set: %v", err)
		}
		var keys []string
		for _, e := range elems {
			keys = append(keys, e.Key())
		}
		sort.Strings(keys)
		if diff := cmp.Diff([]string{"name", "updatedAt"}, keys); diff != "" {
			mt.Fatalf("$set mismatch (-want +got):\n%s", diff)
		}
		if owner := cmd.Lookup("query", "userId").StringValue(); owner != "u1" {
			mt.Fatalf("expected owner-scoped update, got %q", owner)
		}
	})

	mt.Run("update of a missing record", func(mt *mtest.T) {
		repo := &DashboardRepository{col: mt.Coll}
		name := "x"

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		_, err := repo.Update(ctx, primitive.NewObjectID().Hex(), "u1", domain.DashboardPatch{Name: &name}, time.Now())
		if !errors.Is(err, domain.ErrDashboardNotFound) {
			mt.Fatalf("expected ErrDashboardNotFound, got %v", err)
		}
	})

	mt.Run("delete reports misses", func(mt *mtest.T) {
		repo := &DashboardRepository{col: mt.Coll}
		id := primitive.NewObjectID().Hex()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		if err := repo.Delete(ctx, id, "u1"); !errors.Is(err, domain.ErrDashboardNotFound) {
			mt.Fatalf("expected ErrDashboardNotFound, got %v", err)
		}

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		if err := repo.Delete(ctx, id, "u1"); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("count", func(mt *mtest.T) {
		repo := &DashboardRepository{col: mt.Coll}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: 3}}))
		n, err := repo.Count(ctx, ports.DashboardFilter{UserID: "u1"})
		if err != nil {
			mt.Fatalf("count: %v", err)
		}
		if n != 3 {
			mt.Fatalf("expected 3, got %d", n)
		}
	})
}

package flatfile

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vogiaan1904/eventease/internal/models"
)

func newTestBookingRepository(t *testing.T) (BookingRepository, EventRepository, string) {
	t.Helper()
	dir := t.TempDir()
	events := NewEventRepository(filepath.Join(dir, "events.txt"), testLogger)
	path := filepath.Join(dir, "bookings.txt")
	return NewBookingRepository(path, events, testLogger), events, path
}

func TestBookingAppendAndList(t *testing.T) {
	ctx := context.Background()
	repo, _, path := newTestBookingRepository(t)

	if err := repo.Append(ctx, 1, "Mary Ann"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(ctx, 2, "Bob"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(ctx, 1, "Mary Ann"); err != nil {
		t.Fatalf("Append duplicate: %v", err)
	}

	if got := readFile(t, path); got != "1 Mary Ann\n2 Bob\n1 Mary Ann\n" {
		t.Errorf("file content = %q", got)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	want := []models.Booking{{1, "Mary Ann"}, {2, "Bob"}, {1, "Mary Ann"}}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("ListAll = %+v, want %+v", all, want)
	}

	again, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if !reflect.DeepEqual(all, again) {
		t.Errorf("ListAll not idempotent: %+v then %+v", all, again)
	}
}

func TestBookingListFor(t *testing.T) {
	ctx := context.Background()
	repo, _, path := newTestBookingRepository(t)
	writeFile(t, path, "1 Alice", "2 alice", "3 Alice", "oops", "4 Bob")

	mine, err := repo.ListFor(ctx, "Alice")
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	want := []models.Booking{{1, "Alice"}, {3, "Alice"}}
	if !reflect.DeepEqual(mine, want) {
		t.Errorf("ListFor(Alice) = %+v, want %+v", mine, want)
	}
}

func TestBookingRemoveFirstMatchOnly(t *testing.T) {
	ctx := context.Background()
	repo, _, path := newTestBookingRepository(t)
	writeFile(t, path, "1 A", "2 B", "1 A")

	found, err := repo.Remove(ctx, 1, "A")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !found {
		t.Fatal("Remove(1, A) = not found, want found")
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	want := []models.Booking{{2, "B"}, {1, "A"}}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("ListAll after Remove = %+v, want %+v", all, want)
	}
	if temps := leftoverTemps(t, filepath.Dir(path)); len(temps) != 0 {
		t.Errorf("temporary files left behind: %v", temps)
	}
}

func TestBookingRemoveNotFound(t *testing.T) {
	ctx := context.Background()
	repo, _, path := newTestBookingRepository(t)
	writeFile(t, path, "1 A", "2 B", "1 A")
	before := readFile(t, path)

	found, err := repo.Remove(ctx, 9, "Z")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if found {
		t.Error("Remove(9, Z) = found, want not found")
	}
	if after := readFile(t, path); after != before {
		t.Errorf("file changed: %q, want %q", after, before)
	}
	if temps := leftoverTemps(t, filepath.Dir(path)); len(temps) != 0 {
		t.Errorf("temporary files left behind: %v", temps)
	}
}

func TestBookingRemoveKeepsUnparsableLines(t *testing.T) {
	ctx := context.Background()
	repo, _, path := newTestBookingRepository(t)
	writeFile(t, path, "# header", "1 A", "2 B")

	if found, err := repo.Remove(ctx, 1, "A"); err != nil || !found {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", found, err)
	}
	if got := readFile(t, path); got != "# header\n2 B\n" {
		t.Errorf("file content = %q", got)
	}
}

func TestBookingRemoveIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	repo, _, path := newTestBookingRepository(t)
	writeFile(t, path, "1 Alice")

	if found, _ := repo.Remove(ctx, 1, "alice"); found {
		t.Error("Remove matched a name with different case")
	}
}

func TestBookingRemoveMissingFile(t *testing.T) {
	repo, _, _ := newTestBookingRepository(t)
	found, err := repo.Remove(context.Background(), 1, "A")
	if err != nil || found {
		t.Errorf("Remove on missing file = (%v, %v), want (false, nil)", found, err)
	}
}

func TestResolveEventName(t *testing.T) {
	ctx := context.Background()
	repo, events, _ := newTestBookingRepository(t)

	if got := repo.ResolveEventName(ctx, 1); got != UnknownEventName {
		t.Errorf("ResolveEventName(1) on empty store = %q, want %q", got, UnknownEventName)
	}

	if err := events.Add(ctx, concert); err != nil {
		t.Fatalf("Add: %v", err)
	}
	list, err := events.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0] != concert {
		t.Fatalf("List = %+v, want [%+v]", list, concert)
	}

	if got := repo.ResolveEventName(ctx, 1); got != "Concert" {
		t.Errorf("ResolveEventName(1) = %q, want %q", got, "Concert")
	}
	for _, id := range []models.EventID{0, 2, -4} {
		if got := repo.ResolveEventName(ctx, id); got != UnknownEventName {
			t.Errorf("ResolveEventName(%d) = %q, want %q", id, got, UnknownEventName)
		}
	}
}

func TestBookingReset(t *testing.T) {
	ctx := context.Background()
	repo, _, path := newTestBookingRepository(t)
	writeFile(t, path, "1 A")

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("ListAll after Reset = %+v", all)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Errorf("Reset on missing file: %v", err)
	}
}

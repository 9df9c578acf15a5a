package db

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/officefaker/internal/testutil/fakedb"
)

var errRefused = errors.New("connection refused")

type sleepRecorder struct {
	waits []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func newManager(t *testing.T, server *fakedb.Server, opts Options) (*Manager, *sleepRecorder, *bytes.Buffer) {
	t.Helper()
	rec := &sleepRecorder{}
	out := &bytes.Buffer{}
	if opts.Dialect == nil {
		opts.Dialect = &fakedb.Dialect{Server: server}
	}
	if opts.Database == "" {
		opts.Database = "office"
	}
	opts.Sleep = rec.sleep
	opts.Out = out
	return New(opts), rec, out
}

func TestAcquireImmediateSuccess(t *testing.T) {
	server := fakedb.NewServer(t, "office")
	m, rec, out := newManager(t, server, Options{})

	conn, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer conn.Close()

	if len(rec.waits) != 0 {
		t.Errorf("Expected no sleeps, got %v", rec.waits)
	}
	if !strings.Contains(out.String(), "Connected to database successfully") {
		t.Errorf("Expected success message, got %q", out.String())
	}
}

func TestAcquireRetriesTransientErrors(t *testing.T) {
	server := fakedb.NewServer(t, "office")
	server.ConnectErrs = []error{errRefused, errRefused}
	m, rec, out := newManager(t, server, Options{})

	conn, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer conn.Close()

	if len(rec.waits) != 2 {
		t.Fatalf("Expected 2 sleeps, got %v", rec.waits)
	}
	for _, w := range rec.waits {
		if w != time.Second {
			t.Errorf("Expected 1s wait, got %v", w)
		}
	}
	if got := strings.Count(out.String(), "Couldn't connect to the Fake instance, trying again in 1 second(s)."); got != 2 {
		t.Errorf("Expected 2 retry messages, got %d in %q", got, out.String())
	}
}

func TestAcquireBackoffGivesUp(t *testing.T) {
	server := fakedb.NewServer(t, "office")
	for i := 0; i < 20; i++ {
		server.ConnectErrs = append(server.ConnectErrs, errRefused)
	}
	m, rec, out := newManager(t, server, Options{})

	_, err := m.Acquire(context.Background())
	var giveUp *GiveUpError
	if !errors.As(err, &giveUp) {
		t.Fatalf("Expected GiveUpError, got %v", err)
	}
	if giveUp.Attempts != 10 {
		t.Errorf("Expected to give up on attempt 10, got %d", giveUp.Attempts)
	}
	if !errors.Is(err, errRefused) {
		t.Errorf("Expected last connect error to be wrapped, got %v", err)
	}

	want := []int{1, 1, 1, 1, 2, 4, 8, 16, 32}
	if len(rec.waits) != len(want) {
		t.Fatalf("Expected waits %v, got %v", want, rec.waits)
	}
	for i, w := range want {
		if rec.waits[i] != time.Duration(w)*time.Second {
			t.Errorf("Wait %d: expected %ds, got %v", i, w, rec.waits[i])
		}
	}
	if !strings.Contains(out.String(), "Giving up on connecting to the database") {
		t.Errorf("Expected give-up message, got %q", out.String())
	}
	if len(server.Opens) != 10 {
		t.Errorf("Expected 10 connection attempts, got %d", len(server.Opens))
	}
}

func TestRetryStateSequence(t *testing.T) {
	p := DefaultRetryPolicy
	s := NewRetryState()
	var waits []int
	for !s.Exhausted(p) {
		s = s.Next(p)
		waits = append(waits, s.Wait)
	}
	want := []int{1, 1, 1, 1, 2, 4, 8, 16, 32, 64}
	if len(waits) != len(want) {
		t.Fatalf("Expected %v, got %v", want, waits)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("Step %d: expected %d, got %d", i, want[i], waits[i])
		}
	}
	if d := (RetryState{Wait: 4}).Delay(RetryPolicy{Unit: time.Millisecond}); d != 4*time.Millisecond {
		t.Errorf("Expected 4ms delay, got %v", d)
	}
}

func TestAcquireAutoCreatesMissingDatabase(t *testing.T) {
	server := fakedb.NewServer(t)
	prompted := false
	m, rec, _ := newManager(t, server, Options{
		AutoCreate: true,
		Confirm: func(string) (bool, error) {
			prompted = true
			return false, nil
		},
	})

	conn, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer conn.Close()

	if prompted {
		t.Error("Expected no prompt with auto-create enabled")
	}
	if creates := server.Matching("CREATE DATABASE"); len(creates) != 1 {
		t.Errorf("Expected exactly one CREATE DATABASE, got %v", creates)
	}
	if !server.HasDatabase("office") {
		t.Error("Expected database office to exist")
	}
	if len(rec.waits) != 0 {
		t.Errorf("Expected no backoff sleeps, got %v", rec.waits)
	}
	want := []string{"office", "", "office"}
	if strings.Join(server.Opens, ",") != strings.Join(want, ",") {
		t.Errorf("Expected opens %q, got %q", want, server.Opens)
	}
}

func TestAcquireConfirmedCreate(t *testing.T) {
	server := fakedb.NewServer(t)
	var prompt string
	m, _, _ := newManager(t, server, Options{
		Confirm: func(p string) (bool, error) {
			prompt = p
			return true, nil
		},
	})

	conn, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	conn.Close()

	if prompt != "Your database doesn't exist, would you like to create it (Y/n)? " {
		t.Errorf("Unexpected prompt %q", prompt)
	}
	if !server.HasDatabase("office") {
		t.Error("Expected database office to exist")
	}
}

func TestAcquireDeclinedCreate(t *testing.T) {
	server := fakedb.NewServer(t)
	m, _, _ := newManager(t, server, Options{
		Confirm: func(string) (bool, error) { return false, nil },
	})

	_, err := m.Acquire(context.Background())
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("Expected ErrDeclined, got %v", err)
	}
	if len(server.Matching("CREATE DATABASE")) != 0 {
		t.Error("Expected no CREATE DATABASE after declining")
	}
}

func TestAcquireCreateFailure(t *testing.T) {
	server := fakedb.NewServer(t)
	denied := errors.New("permission denied")
	server.ExecHook = func(database, query string) error {
		if strings.HasPrefix(query, "CREATE DATABASE") {
			return denied
		}
		return nil
	}
	m, _, out := newManager(t, server, Options{AutoCreate: true})

	_, err := m.Acquire(context.Background())
	var createErr *CreateDatabaseError
	if !errors.As(err, &createErr) {
		t.Fatalf("Expected CreateDatabaseError, got %v", err)
	}
	if !errors.Is(err, denied) {
		t.Errorf("Expected cause to be wrapped, got %v", err)
	}
	if !strings.Contains(out.String(), "Wasn't able to create the database.") {
		t.Errorf("Expected failure message, got %q", out.String())
	}
}

func TestAcquireFatalError(t *testing.T) {
	server := fakedb.NewServer(t, "office")
	badAuth := errors.New("unsupported auth plugin")
	server.ConnectErrs = []error{badAuth}
	m, rec, _ := newManager(t, server, Options{
		Dialect: &fakedb.Dialect{Server: server, Fatal: badAuth},
	})

	_, err := m.Acquire(context.Background())
	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("Expected FatalError, got %v", err)
	}
	if len(rec.waits) != 0 {
		t.Errorf("Expected no retries, got %v", rec.waits)
	}
}

func TestAcquireCanceledContext(t *testing.T) {
	server := fakedb.NewServer(t, "office")
	server.ConnectErrs = []error{context.Canceled}
	m, _, _ := newManager(t, server, Options{})

	_, err := m.Acquire(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected cancellation to surface, got %v", err)
	}
}

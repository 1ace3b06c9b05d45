package app

import (
	"errors"
	"testing"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

func TestSetReady_AllReadyTransition(t *testing.T) {
	r := newRig(t)
	code := r.create("dinner", "host")
	r.join(code, "alice")
	r.join(code, "bob")
	hostConn := r.attach(code, "host")
	r.attach(code, "alice")
	r.attach(code, "bob")

	res, err := r.orch.SetReady(r.ctx, code, "alice", true)
	if err != nil {
		t.Fatal(err)
	}
	if res.AllReady {
		t.Fatal("allReady with bob still not ready")
	}
	if got := r.status(code); got != domain.StatusActive {
		t.Fatalf("status = %s, want active", got)
	}

	res, err = r.orch.SetReady(r.ctx, code, "bob", true)
	if err != nil {
		t.Fatal(err)
	}
	if !res.AllReady || res.MemberCount != 3 {
		t.Fatalf("got %+v, want all ready with 3 members", res)
	}
	if got := r.status(code); got != domain.StatusSelecting {
		t.Fatalf("status = %s, want selecting", got)
	}
	if n := hostConn.countKind(t, core.EventAllReady); n != 1 {
		t.Fatalf("host saw %d all_members_ready events, want 1", n)
	}

	// A repeated toggle must not re-announce.
	if _, err := r.orch.SetReady(r.ctx, code, "bob", true); err != nil {
		t.Fatal(err)
	}
	if n := hostConn.countKind(t, core.EventAllReady); n != 1 {
		t.Fatalf("host saw %d all_members_ready events after repeat, want 1", n)
	}
}

func TestSetReady_HostNotToggled(t *testing.T) {
	r := newRig(t)
	code := r.create("dinner", "host")
	r.join(code, "alice")
	aliceConn := r.attach(code, "alice")

	// The host is auto-ready; the toggle path ignores it.
	if _, err := r.orch.SetReady(r.ctx, code, "host", false); err != nil {
		t.Fatal(err)
	}
	members, _ := r.store.GetMembers(r.ctx, code)
	for _, m := range members {
		if m.IsHost && !m.IsReady {
			t.Fatal("host ready flag was toggled off")
		}
	}
	if n := aliceConn.countKind(t, core.EventReadyUpdate); n != 0 {
		t.Fatalf("host toggle produced %d ready updates, want 0", n)
	}
}

func TestSetReady_HostAloneNeverAllReady(t *testing.T) {
	r := newRig(t)
	code := r.create("solo", "host")
	r.attach(code, "host")

	res, err := r.orch.SetReady(r.ctx, code, "host", true)
	if err != nil {
		t.Fatal(err)
	}
	if res.AllReady {
		t.Fatal("group with no non-host members reported all ready")
	}
	if got := r.status(code); got != domain.StatusActive {
		t.Fatalf("status = %s, want active", got)
	}
}

func TestSetReady_Failures(t *testing.T) {
	r := newRig(t)
	code := r.create("dinner", "host")

	if _, err := r.orch.SetReady(r.ctx, "ZZZZZZ", "alice", true); !errors.Is(err, core.ErrGroupNotFound) {
		t.Fatalf("err = %v, want ErrGroupNotFound", err)
	}
	if _, err := r.orch.SetReady(r.ctx, code, "stranger", true); !errors.Is(err, core.ErrNotAMember) {
		t.Fatalf("err = %v, want ErrNotAMember", err)
	}
}

func TestAllNonHostReady(t *testing.T) {
	host := domain.Member{Username: "h", IsHost: true, IsReady: true}
	ready := domain.Member{Username: "a", IsReady: true}
	notReady := domain.Member{Username: "b"}

	tests := []struct {
		name    string
		members []domain.Member
		want    bool
	}{
		{"host alone", []domain.Member{host}, false},
		{"one ready member", []domain.Member{host, ready}, true},
		{"one not ready", []domain.Member{host, ready, notReady}, false},
		{"all ready", []domain.Member{host, ready, {Username: "c", IsReady: true}}, true},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := allNonHostReady(tt.members); got != tt.want {
				t.Fatalf("allNonHostReady = %v, want %v", got, tt.want)
			}
		})
	}
}

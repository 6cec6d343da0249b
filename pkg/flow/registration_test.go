package flow

import "testing"

func TestListeners_RemoveWhileIterating(t *testing.T) {
	var list Listeners[func() string]
	var regB Registration

	list.Add(func() string { return "a" })
	regB = list.Add(func() string { return "b" })
	list.Add(func() string { return "c" })

	var got []string
	for _, fn := range list.Snapshot() {
		got = append(got, fn())
		regB.Remove()
	}
	if len(got) != 3 {
		t.Fatalf("snapshot should be stable during iteration, got %v", got)
	}
	if list.Len() != 2 {
		t.Fatalf("expected 2 listeners after removal, got %d", list.Len())
	}

	regB.Remove()
	if list.Len() != 2 {
		t.Fatalf("second Remove should be a no-op, got %d", list.Len())
	}

	got = got[:0]
	for _, fn := range list.Snapshot() {
		got = append(got, fn())
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("unexpected listeners after removal: %v", got)
	}
}

func TestRegistrationFunc_Nil(t *testing.T) {
	var reg RegistrationFunc
	reg.Remove()
}

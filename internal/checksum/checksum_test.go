package checksum

import "testing"

func TestSum(t *testing.T) {
	got := Sum([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("Sum = %q, want %q", got, want)
	}
}

func TestLedger_Claim(t *testing.T) {
	l := NewLedger()
	if got := l.Claim("a/images/x.png", []byte("one")); got != Fresh {
		t.Errorf("first claim = %d, want Fresh", got)
	}
	if got := l.Claim("a/images/x.png", []byte("one")); got != Duplicate {
		t.Errorf("identical claim = %d, want Duplicate", got)
	}
	if got := l.Claim("a/images/x.png", []byte("two")); got != Conflict {
		t.Errorf("different claim = %d, want Conflict", got)
	}
	if got := l.Claim("b/images/x.png", []byte("two")); got != Fresh {
		t.Errorf("other destination = %d, want Fresh", got)
	}
	// the first claim stands
	if got := l.Claim("a/images/x.png", []byte("one")); got != Duplicate {
		t.Errorf("after conflict = %d, want Duplicate", got)
	}
}

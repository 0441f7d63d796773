package builtins

import (
	"testing"

	"github.com/nyjc-computing/pseudo9608/internal/types"
)

func TestSignaturesCoverAllNames(t *testing.T) {
	sigs := Signatures()
	for _, name := range Names {
		sig, ok := sigs[name]
		if !ok {
			t.Errorf("Names lists %s but Signatures has no entry for it", name)
			continue
		}
		if sig.Tag != types.CALLABLE {
			t.Errorf("%s: tag = %v, want CALLABLE", name, sig.Tag)
		}
	}
	if len(sigs) != len(Names) {
		t.Errorf("Signatures has %d entries, Names has %d", len(sigs), len(Names))
	}
}

func TestEOFSignature(t *testing.T) {
	sig := Signatures()["EOF"]
	if len(sig.Params) != 1 || sig.Params[0].Type.Tag != types.STRING {
		t.Fatalf("EOF params = %+v, want one STRING param", sig.Params)
	}
	if sig.Return == nil || sig.Return.Tag != types.BOOLEAN {
		t.Fatalf("EOF return = %+v, want BOOLEAN", sig.Return)
	}
}

func TestMIDSignature(t *testing.T) {
	sig := Signatures()["MID"]
	wantTags := []types.Tag{types.STRING, types.INTEGER, types.INTEGER}
	if len(sig.Params) != len(wantTags) {
		t.Fatalf("MID params = %+v", sig.Params)
	}
	for i, want := range wantTags {
		if sig.Params[i].Type.Tag != want {
			t.Errorf("MID param %d tag = %v, want %v", i, sig.Params[i].Type.Tag, want)
		}
		if sig.Params[i].Mode != types.ByValue {
			t.Errorf("MID param %d mode = %v, want ByValue", i, sig.Params[i].Mode)
		}
	}
	if sig.Return == nil || sig.Return.Tag != types.STRING {
		t.Fatalf("MID return = %+v, want STRING", sig.Return)
	}
}

func TestRNDTakesNoArguments(t *testing.T) {
	sig := Signatures()["RND"]
	if len(sig.Params) != 0 {
		t.Fatalf("RND params = %+v, want none", sig.Params)
	}
	if sig.Return == nil || sig.Return.Tag != types.REAL {
		t.Fatalf("RND return = %+v, want REAL", sig.Return)
	}
}

package profile

import (
	"testing"
	"time"
)

func TestParams(t *testing.T) {
	lf := LeadFree.Params()
	if lf.SoakMax != 200 || lf.ReflowMax != 250 || lf.SoakMicroPeriod != 9*time.Second {
		t.Errorf("unexpected lead-free params: %+v", lf)
	}

	pb := Leaded.Params()
	if pb.SoakMax != 180 || pb.ReflowMax != 224 || pb.SoakMicroPeriod != 10*time.Second {
		t.Errorf("unexpected leaded params: %+v", pb)
	}

	// Bake has no stage constants
	if (Bake.Params() != Params{}) {
		t.Errorf("expected empty bake params, got %+v", Bake.Params())
	}

	if (Profile(99).Params() != Params{}) {
		t.Error("expected empty params for invalid profile")
	}
}

func TestNextCycles(t *testing.T) {
	if LeadFree.Next() != Leaded {
		t.Error("expected lead-free -> leaded")
	}
	if Leaded.Next() != Bake {
		t.Error("expected leaded -> bake")
	}
	if Bake.Next() != LeadFree {
		t.Error("expected bake -> lead-free")
	}
}

func TestValid(t *testing.T) {
	for _, p := range []Profile{LeadFree, Leaded, Bake} {
		if !p.Valid() {
			t.Errorf("expected %v valid", p)
		}
	}
	if Profile(3).Valid() {
		t.Error("expected profile id 3 invalid")
	}
}

func TestStrings(t *testing.T) {
	cases := []struct {
		p    Profile
		name string
		code string
	}{
		{LeadFree, "lead-free", "LF"},
		{Leaded, "leaded", "PB"},
		{Bake, "bake", "BK"},
		{Profile(9), "unknown", "??"},
	}
	for _, c := range cases {
		if c.p.String() != c.name {
			t.Errorf("expected name %q, got %q", c.name, c.p.String())
		}
		if c.p.Code() != c.code {
			t.Errorf("expected code %q, got %q", c.code, c.p.Code())
		}
	}
}

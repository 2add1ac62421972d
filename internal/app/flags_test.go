package app

import (
	"flag"
	"io"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	args := []string{"-scale=3", "-seed=9", "-set", "lx=3.5", "-set", "h = 12", "-config", "run.toml"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	if cfg.Sim != "pigment" || cfg.Scale != 3 || cfg.Seed != 9 || cfg.File != "run.toml" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Set["lx"] != "3.5" || cfg.Set["h"] != "12" {
		t.Fatalf("unexpected overrides %v", cfg.Set)
	}
	if got := cfg.Set.String(); got != "h=12,lx=3.5" {
		t.Fatalf("String() = %q", got)
	}
}

func TestOverridesRejectMalformed(t *testing.T) {
	o := Overrides{}
	for _, bad := range []string{"lx", "=3", ""} {
		if err := o.Set(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

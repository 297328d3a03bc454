package tui

import (
	"testing"
)

func TestSessionRuntime(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.TickRate = 30
	cfg.Seed = 99
	srv := &SSHServer{config: cfg}

	rt := srv.sessionRuntime(120, 40)
	if rt.ScreenW != 120 || rt.ScreenH != 40 {
		t.Errorf("size = %dx%d", rt.ScreenW, rt.ScreenH)
	}
	if rt.TickRate != 30 || rt.Seed != 99 {
		t.Errorf("rt = %+v", rt)
	}
}

func TestSessionRuntimeTimeSeed(t *testing.T) {
	srv := &SSHServer{config: DefaultSSHServerConfig()}

	if rt := srv.sessionRuntime(80, 24); rt.Seed == 0 {
		t.Error("zero seed should be replaced with a time-based one")
	}
}

func TestNewSSHServerRequiresFactory(t *testing.T) {
	if _, err := NewSSHServer(DefaultSSHServerConfig(), testLayout(t), nil, nil); err == nil {
		t.Error("expected an error without a shell factory")
	}
}

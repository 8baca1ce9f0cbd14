package legacy

import "testing"

func TestScanningToLocked(t *testing.T) {
	sm := NewStateMachine()

	if sm.CurrentState().Kind != StateScanning {
		t.Fatalf("expected initial scanning state, got %v", sm.CurrentState())
	}

	action, _ := sm.ProcessFrame(true, false)
	if sm.CurrentState().Kind != StateLocked {
		t.Fatalf("expected locked state, got %v", sm.CurrentState())
	}
	if action != ActionContinue {
		t.Fatalf("expected continue, got %v", action)
	}
}

func TestLockedToExtract(t *testing.T) {
	config := DefaultStateConfig()
	config.MinLockFrames = 2
	sm := NewStateMachineWithConfig(config)

	sm.ProcessFrame(true, false)
	action, _ := sm.ProcessFrame(true, false)

	if action != ActionExtract {
		t.Fatalf("expected extract, got %v", action)
	}
	if sm.CurrentState().Kind != StateCooldown {
		t.Fatalf("expected cooldown, got %v", sm.CurrentState())
	}
}

func TestDuplicateFrameDropped(t *testing.T) {
	config := DefaultStateConfig()
	config.MinLockFrames = 1
	config.CooldownFrames = 1
	config.InitialSkip = 3
	sm := NewStateMachineWithConfig(config)

	action1, _ := sm.ProcessFrame(true, false)
	if action1 != ActionExtract {
		t.Fatalf("expected extract, got %v", action1)
	}
	if sm.CurrentState().Kind != StateCooldown {
		t.Fatalf("expected cooldown, got %v", sm.CurrentState())
	}

	sm.ProcessFrame(false, false)
	if sm.CurrentState().Kind != StateScanning {
		t.Fatalf("expected scanning after cooldown, got %v", sm.CurrentState())
	}

	action2, _ := sm.ProcessFrame(true, true)
	if action2 != ActionDrop {
		t.Fatalf("expected drop for duplicate, got %v", action2)
	}
}

func TestCooldownToScanning(t *testing.T) {
	config := DefaultStateConfig()
	config.MinLockFrames = 1
	config.CooldownFrames = 2
	config.InitialSkip = 3
	sm := NewStateMachineWithConfig(config)

	sm.ProcessFrame(true, false)
	if st := sm.CurrentState(); st.Kind != StateCooldown || st.Counter != 2 {
		t.Fatalf("expected cooldown{2}, got %v", st)
	}

	sm.ProcessFrame(false, false)
	if st := sm.CurrentState(); st.Kind != StateCooldown || st.Counter != 1 {
		t.Fatalf("expected cooldown{1}, got %v", st)
	}

	sm.ProcessFrame(false, false)
	if st := sm.CurrentState(); st.Kind != StateScanning || st.Counter != 3 {
		t.Fatalf("expected scanning{3}, got %v", st)
	}
}

func TestScanningSkipIncrement(t *testing.T) {
	config := DefaultStateConfig()
	config.InitialSkip = 2
	config.MaxSkip = 5
	sm := NewStateMachineWithConfig(config)

	action1, skip1 := sm.ProcessFrame(false, false)
	if action1 != ActionSkipFrames || skip1 != 2 {
		t.Fatalf("expected skip(2), got %v(%d)", action1, skip1)
	}
	if st := sm.CurrentState(); st.Kind != StateScanning || st.Counter != 3 {
		t.Fatalf("expected scanning{3}, got %v", st)
	}

	action2, skip2 := sm.ProcessFrame(false, false)
	if action2 != ActionSkipFrames || skip2 != 3 {
		t.Fatalf("expected skip(3), got %v(%d)", action2, skip2)
	}
	if st := sm.CurrentState(); st.Kind != StateScanning || st.Counter != 4 {
		t.Fatalf("expected scanning{4}, got %v", st)
	}
}

func TestScanningSkipCapsAtMax(t *testing.T) {
	config := DefaultStateConfig()
	config.InitialSkip = 4
	config.MaxSkip = 5
	sm := NewStateMachineWithConfig(config)

	for i := 0; i < 10; i++ {
		sm.ProcessFrame(false, false)
	}
	if st := sm.CurrentState(); st.Kind != StateScanning || st.Counter != 5 {
		t.Fatalf("expected skip capped at 5, got %v", st)
	}
}

func TestDefaultsNeverExtractOnFirstTextFrame(t *testing.T) {
	// With the default MinLockFrames of 3 the scanning branch can never
	// extract immediately; the first text frame always locks.
	sm := NewStateMachine()
	action, _ := sm.ProcessFrame(true, false)
	if action != ActionContinue || sm.CurrentState().Kind != StateLocked {
		t.Fatalf("expected lock on first text frame, got %v in %v", action, sm.CurrentState())
	}
}

func TestReset(t *testing.T) {
	sm := NewStateMachine()
	sm.ProcessFrame(true, false)
	sm.ProcessFrame(true, false)

	sm.Reset()
	if sm.FrameCount() != 0 {
		t.Fatalf("expected frame count reset, got %d", sm.FrameCount())
	}
	if st := sm.CurrentState(); st.Kind != StateScanning || st.Counter != DefaultStateConfig().InitialSkip {
		t.Fatalf("expected initial scanning state, got %v", st)
	}
}
